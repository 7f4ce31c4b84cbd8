package pipeline

import (
	"errors"
	"fmt"
	"net/http"

	"coverstudio/internal/domain"
)

// MessageKey identifies one failure signature in the translation table.
type MessageKey string

const (
	KeyMissingCredential MessageKey = "missing_credential"
	KeyPermission        MessageKey = "permission"
	KeyRateLimited       MessageKey = "rate_limited"
	KeyServiceDown       MessageKey = "service_down"
	KeyNetwork           MessageKey = "network"
	KeySafety            MessageKey = "safety"
	KeyCandidate         MessageKey = "candidate"
	KeyParse             MessageKey = "parse"
	KeyPresetFetch       MessageKey = "preset_fetch"
	KeyGeneric           MessageKey = "generic"
)

// messages is the user-facing translation table, keyed by failure signature
// then locale. The generic entry is a format string taking the raw error.
var messages = map[MessageKey]map[string]string{
	KeyMissingCredential: {
		"zh": "API Key 缺失，请先登录或在设置中配置自定义 Key。",
		"en": "API key is missing. Log in first or configure a custom key in settings.",
	},
	KeyPermission: {
		"zh": "API Key 权限不足或无效 (403)，请检查您的 Key。",
		"en": "API key lacks permission or is invalid (403). Check your key.",
	},
	KeyRateLimited: {
		"zh": "请求过于频繁，触发限流，请稍后再试 (429)。",
		"en": "Too many requests, rate limited. Try again later (429).",
	},
	KeyServiceDown: {
		"zh": "AI 服务暂时不可用，请稍后重试 (5xx)。",
		"en": "The AI service is temporarily unavailable. Try again later (5xx).",
	},
	KeyNetwork: {
		"zh": "网络连接失败，请检查您的网络设置 (需可访问 Google API)。",
		"en": "Network connection failed. Check your network settings (Google API must be reachable).",
	},
	KeySafety: {
		"zh": "生成内容触犯安全策略被拦截，请调整提示词或输入内容。",
		"en": "The generated content was blocked by the safety policy. Adjust the prompt or inputs.",
	},
	KeyCandidate: {
		"zh": "模型未能生成有效内容，请重试。",
		"en": "The model did not produce usable content. Try again.",
	},
	KeyParse: {
		"zh": "解析 AI 返回的数据失败，请重试",
		"en": "Failed to parse the AI response. Try again.",
	},
	KeyPresetFetch: {
		"zh": "无法加载预设人物图片，请检查网络",
		"en": "Failed to load the preset person image. Check your network.",
	},
	KeyGeneric: {
		"zh": "生成出错: %s",
		"en": "Generation failed: %s",
	},
}

// validationMessages carries the field-specific precondition messages shown
// before the pipeline is allowed to start.
var validationMessages = map[string]map[string]string{
	"personSource": {
		"zh": "请完成 [Q5]：您选择了使用上传照片，请上传一张真人照片。",
		"en": "Complete [Q5]: you chose to use an uploaded photo, please attach a portrait photo.",
	},
	"logoType": {
		"zh": "请完成 [Q10-2]：您选择了图片 Logo，请上传 Logo 文件。",
		"en": "Complete [Q10-2]: you chose an image logo, please upload the logo file.",
	},
}

func validationMessage(field, locale string) string {
	table, ok := validationMessages[field]
	if !ok {
		return field + " is required"
	}
	if msg, ok := table[locale]; ok {
		return msg
	}
	return table["zh"]
}

// Classify maps an error onto its failure signature.
func Classify(err error) MessageKey {
	switch {
	case errors.Is(err, domain.ErrNoCredential):
		return KeyMissingCredential
	case errors.Is(err, domain.ErrSafetyBlocked):
		return KeySafety
	case errors.Is(err, domain.ErrEmptyResponse), errors.Is(err, domain.ErrNoImageData):
		return KeyCandidate
	}
	var ferr *domain.FetchError
	if errors.As(err, &ferr) {
		return KeyPresetFetch
	}
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return KeyParse
	}
	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		switch {
		case perr.StatusCode == http.StatusForbidden, perr.StatusCode == http.StatusUnauthorized:
			return KeyPermission
		case perr.StatusCode == http.StatusTooManyRequests:
			return KeyRateLimited
		case perr.StatusCode >= http.StatusInternalServerError:
			return KeyServiceDown
		case perr.StatusCode == 0 && perr.Err != nil:
			return KeyNetwork
		}
	}
	return KeyGeneric
}

// Translate renders the localized, user-facing message for a pipeline
// failure. Validation errors carry their own field-specific message and are
// passed through untouched.
func Translate(err error, locale string) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	key := Classify(err)
	table, ok := messages[key]
	if !ok {
		table = messages[KeyGeneric]
	}
	msg, ok := table[locale]
	if !ok {
		msg = table["zh"]
	}
	if key == KeyGeneric {
		return fmt.Sprintf(msg, err)
	}
	return msg
}

package pipeline

import (
	"context"

	"coverstudio/internal/assets"
	"coverstudio/internal/credential"
	"coverstudio/internal/domain"
	"coverstudio/internal/imagegen"
	"coverstudio/internal/infra"
	"coverstudio/internal/prompt"
)

// proxySuffix is appended to the finalized prompt on the one-shot path,
// which has no interactive refinement step.
const proxySuffix = "\n\n(High quality, 16:9, YouTube thumbnail style)"

// Controller sequences the two-stage pipeline for a session: strategy first,
// then image generation, with the status machine and error surfacing in
// between. One controller serves every session; all per-user state lives in
// the Session.
type Controller struct {
	strategist prompt.Strategist
	renderer   imagegen.Renderer
	resolver   *credential.Resolver
	preset     *assets.PresetFetcher
	logger     infra.Logger
}

func NewController(strategist prompt.Strategist, renderer imagegen.Renderer, resolver *credential.Resolver, preset *assets.PresetFetcher, logger infra.Logger) *Controller {
	return &Controller{
		strategist: strategist,
		renderer:   renderer,
		resolver:   resolver,
		preset:     preset,
		logger:     logger,
	}
}

// RunStrategy drives idle/prompt_success/complete -> analyzing ->
// {prompt_success | error}. Validation failures block the transition without
// touching the network; starting a run always clears the previous strategy
// result and generated image.
func (c *Controller) RunStrategy(ctx context.Context, s *Session, locale string) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrStageBusy
	}
	form := s.form
	if err := form.Validate(); err != nil {
		s.errMsg = Translate(err, locale)
		s.mu.Unlock()
		return err
	}
	if form.NeedsPersonUpload() && s.person == nil {
		err := domain.NewValidationError("personSource", validationMessage("personSource", locale))
		s.errMsg = err.Message
		s.mu.Unlock()
		return err
	}
	if form.NeedsLogoUpload() && s.logo == nil {
		err := domain.NewValidationError("logoType", validationMessage("logoType", locale))
		s.errMsg = err.Message
		s.mu.Unlock()
		return err
	}
	cred, err := c.resolver.Resolve(s.auth)
	if err != nil {
		s.status = domain.StatusError
		s.errMsg = Translate(err, locale)
		s.mu.Unlock()
		return err
	}

	// A new strategy run invalidates whatever the previous cycle produced.
	s.status = domain.StatusAnalyzing
	s.result = nil
	s.image = ""
	s.errMsg = ""
	s.busy = true
	s.mu.Unlock()

	c.logger.Debug().Str("session", s.ID).Str("source", string(cred.Source)).Msg("strategy stage started")
	result, err := c.strategist.Optimize(ctx, form, cred.Key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.status = domain.StatusError
		s.errMsg = Translate(err, locale)
		c.logger.Warn().Err(err).Str("session", s.ID).Msg("strategy stage failed")
		return err
	}
	s.result = result
	s.status = domain.StatusPromptSuccess
	c.logger.Info().Str("session", s.ID).Msg("strategy stage succeeded")
	return nil
}

// RunImage drives prompt_success -> generating_image -> {complete | error}.
// A failure leaves the strategy result intact so the user can retry without
// redoing stage one.
func (c *Controller) RunImage(ctx context.Context, s *Session, locale string) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrStageBusy
	}
	if s.result == nil {
		s.mu.Unlock()
		return domain.ErrNoStrategy
	}
	cred, err := c.resolver.Resolve(s.auth)
	if err != nil {
		s.status = domain.StatusError
		s.errMsg = Translate(err, locale)
		s.mu.Unlock()
		return err
	}
	form := s.form
	finalPrompt := s.result.FinalPrompt
	person := s.person
	logo := s.logo
	s.status = domain.StatusGeneratingImage
	s.errMsg = ""
	s.busy = true
	s.mu.Unlock()

	fail := func(err error) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.busy = false
		s.status = domain.StatusError
		s.errMsg = Translate(err, locale)
		c.logger.Warn().Err(err).Str("session", s.ID).Msg("image stage failed")
		return err
	}

	req := imagegen.Request{Prompt: finalPrompt}
	switch {
	case form.NeedsPersonUpload():
		req.Person = person
	case form.NeedsPresetPerson():
		preset, err := c.preset.Fetch(ctx)
		if err != nil {
			return fail(err)
		}
		req.Person = preset
	}
	if form.NeedsLogoUpload() {
		req.Logo = logo
	}

	c.logger.Debug().Str("session", s.ID).Str("source", string(cred.Source)).Msg("image stage started")
	payload, err := c.renderer.Render(ctx, req, cred.Key)
	if err != nil {
		return fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.image = imagegen.DataURI(payload)
	s.status = domain.StatusComplete
	c.logger.Info().Str("session", s.ID).Msg("image stage succeeded")
	return nil
}

// GenerateOnce replays both stages back-to-back with no session state. Used
// by the public generate endpoint and the CLI, which have no two-button
// workflow to drive.
func (c *Controller) GenerateOnce(ctx context.Context, form domain.CoverFormData, apiKey string) (*domain.OptimizationResult, string, error) {
	result, err := c.strategist.Optimize(ctx, form, apiKey)
	if err != nil {
		return nil, "", err
	}
	payload, err := c.renderer.Render(ctx, imagegen.Request{Prompt: result.FinalPrompt + proxySuffix}, apiKey)
	if err != nil {
		return result, "", err
	}
	return result, imagegen.DataURI(payload), nil
}

// Generate runs both stages on the server credential, for callers outside
// the session workflow.
func (c *Controller) Generate(ctx context.Context, form domain.CoverFormData) (*domain.OptimizationResult, string, error) {
	cred, err := c.resolver.Resolve(credential.Auth{LoggedIn: true})
	if err != nil {
		return nil, "", err
	}
	return c.GenerateOnce(ctx, form, cred.Key)
}

// HasServerKey exposes the fail-closed precondition for the public endpoint.
func (c *Controller) HasServerKey() bool {
	return c.resolver.HasServerKey()
}

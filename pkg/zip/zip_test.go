package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssetsRoundTrip(t *testing.T) {
	data := ArchiveAssets([]Asset{
		{Filename: "cover.png", MIME: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
		{Filename: "strategy.json", MIME: "application/json", Data: []byte(`{"finalPrompt":"x"}`)},
		{Filename: "", Data: []byte("skipped")},
	})
	if len(data) == 0 {
		t.Fatal("ArchiveAssets returned an empty archive")
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading archive back: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive holds %d entries, want 2", len(zr.File))
	}
	got := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %q: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %q: %v", f.Name, err)
		}
		got[f.Name] = string(body)
	}
	if got["strategy.json"] != `{"finalPrompt":"x"}` {
		t.Fatalf("strategy.json = %q", got["strategy.json"])
	}
	if got["cover.png"] == "" {
		t.Fatal("cover.png missing from archive")
	}
}

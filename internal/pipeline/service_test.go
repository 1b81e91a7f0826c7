package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/docfmt/internal/config"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/rewrite"
)

func newService(conv parser.Converter) *Service {
	cfg := config.Config{
		MaxUploadBytes:  config.DefaultMaxUploadBytes,
		ResultTTL:       time.Hour,
		CleanupInterval: time.Hour,
		StatsWindow:     time.Hour,
	}
	return NewService(cfg, newProcessor(conv), discard)
}

func TestService_FormatStoresResult(t *testing.T) {
	svc := newService(&fakeConverter{conv: &parser.Conversion{HTML: "<p>hi</p>"}})

	res, err := svc.Format(context.Background(), []byte("x"), "a.docx", rewrite.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Get(res.ID) != res {
		t.Error("expected result to be stored")
	}
	if svc.StoredResults() != 1 {
		t.Errorf("expected 1 stored result, got %d", svc.StoredResults())
	}
	if !svc.Delete(res.ID) || svc.Get(res.ID) != nil {
		t.Error("expected result to be deleted")
	}
}

func TestService_StatsByOutcome(t *testing.T) {
	fc := &fakeConverter{conv: &parser.Conversion{HTML: "<p>hi</p>"}}
	svc := newService(fc)
	ctx := context.Background()

	if _, err := svc.Format(ctx, []byte("x"), "a.docx", rewrite.DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Format(ctx, []byte("x"), "a.txt", rewrite.DefaultOptions()); err == nil {
		t.Fatal("expected validation error")
	}
	fc.err = errors.New("corrupt")
	if _, err := svc.Format(ctx, []byte("x"), "b.docx", rewrite.DefaultOptions()); err == nil {
		t.Fatal("expected conversion error")
	}

	snap := svc.Stats()
	if snap.Formatted != 1 || snap.Rejected != 1 || snap.Failed != 1 {
		t.Errorf("unexpected stats %+v", snap)
	}
	if svc.StoredResults() != 1 {
		t.Errorf("expected only the successful result stored, got %d", svc.StoredResults())
	}
}

func TestService_StartStop(t *testing.T) {
	svc := newService(&fakeConverter{})
	svc.Start(context.Background())
	svc.Stop()
	// Stop without Start must not block.
	newService(&fakeConverter{}).Stop()
}

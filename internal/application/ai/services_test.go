package ai

import (
	"context"
	"errors"
	"testing"

	domai "github.com/bryanwahyu/promptlens/internal/domain/ai"
	"github.com/bryanwahyu/promptlens/internal/domain/image"
)

type fakeClient struct {
	calls int
	last  domai.Request
	reply domai.Reply
	err   error
}

func (f *fakeClient) Describe(_ context.Context, req domai.Request) (domai.Reply, error) {
	f.calls++
	f.last = req
	return f.reply, f.err
}

func TestAnalyze_RejectsMalformedWithoutCalling(t *testing.T) {
	inputs := map[string]error{
		"":                          image.ErrRequired,
		"hello":                     image.ErrInvalid,
		"data:image/png,AAAA":       image.ErrInvalid,
		"base64,AAAA":               image.ErrInvalid,
		"data:image/png;base64,@@@": image.ErrInvalid,
	}
	for in, want := range inputs {
		fc := &fakeClient{}
		svc := NewService(fc)
		_, err := svc.Analyze(context.Background(), in)
		if !errors.Is(err, want) {
			t.Errorf("Analyze(%q) error = %v, want %v", in, err, want)
		}
		if fc.calls != 0 {
			t.Errorf("Analyze(%q) made %d model calls, want 0", in, fc.calls)
		}
	}
}

func TestAnalyze_NotConfigured(t *testing.T) {
	svc := NewService(nil)
	if svc.Configured() {
		t.Fatal("expected Configured() false for nil client")
	}
	_, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	if !errors.Is(err, domai.ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestAnalyze_EmptyInputBeatsMissingCredential(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Analyze(context.Background(), "")
	if !errors.Is(err, image.ErrRequired) {
		t.Fatalf("error = %v, want ErrRequired", err)
	}
}

func TestAnalyze_OneCallFirstText(t *testing.T) {
	fc := &fakeClient{reply: domai.Reply{Blocks: []domai.ContentBlock{
		{Kind: domai.BlockRefusal, Text: "ignored"},
		{Kind: domai.BlockText, Text: "A red fox in snow, cinematic lighting"},
	}}}
	svc := NewService(fc)

	got, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if got != "A red fox in snow, cinematic lighting" {
		t.Errorf("prompt = %q", got)
	}
	if fc.calls != 1 {
		t.Errorf("model calls = %d, want 1", fc.calls)
	}
	if fc.last.Image.MediaType != "image/png" {
		t.Errorf("media type = %q, want image/png", fc.last.Image.MediaType)
	}
}

func TestAnalyze_NoTextIsEmptySuccess(t *testing.T) {
	fc := &fakeClient{reply: domai.Reply{}}
	svc := NewService(fc)

	got, err := svc.Analyze(context.Background(), "data:image/jpeg;base64,AAAA")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if got != "" {
		t.Errorf("prompt = %q, want empty", got)
	}
}

func TestAnalyze_DependencyError(t *testing.T) {
	boom := errors.New("upstream 502")
	fc := &fakeClient{err: boom}
	svc := NewService(fc)

	_, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
	if got, want := err.Error(), "analysis failed: upstream 502"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
	if fc.calls != 1 {
		t.Errorf("model calls = %d, want 1", fc.calls)
	}
}

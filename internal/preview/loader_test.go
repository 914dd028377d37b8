package preview

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/jobdigest/internal/digest"
)

func TestLoader_CollectsAndQuits(t *testing.T) {
	want := testCollection()
	m := newLoaderModel(context.Background(), "All sources", func(context.Context) (digest.Collection, error) {
		return want, nil
	})

	if m.View() == "" {
		t.Fatal("spinner view should not be empty while loading")
	}

	msg := m.doCollect()()
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected quit after collection")
	}
	final := next.(loaderModel)
	if final.err != nil || len(final.result.Jobs) != 2 {
		t.Errorf("result = %+v, err = %v", final.result, final.err)
	}
	if final.View() != "" {
		t.Error("view should be empty once done")
	}
}

func TestLoader_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	m := newLoaderModel(context.Background(), "remotive", func(context.Context) (digest.Collection, error) {
		return digest.Collection{}, boom
	})

	next, _ := m.Update(m.doCollect()())
	if err := next.(loaderModel).err; !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestLoader_CtrlCCancelsCollect(t *testing.T) {
	m := newLoaderModel(context.Background(), "All sources", func(ctx context.Context) (digest.Collection, error) {
		<-ctx.Done()
		return digest.Collection{}, ctx.Err()
	})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit on ctrl+c")
	}
	final := next.(loaderModel)
	if !errors.Is(final.err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", final.err)
	}

	// The in-flight collect observes the cancellation; its result does not
	// replace the cancellation error.
	after, _ := final.Update(final.doCollect()())
	if !errors.Is(after.(loaderModel).err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", after.(loaderModel).err)
	}
}

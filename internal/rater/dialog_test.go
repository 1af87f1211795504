package rater

import (
	"context"
	"testing"

	"github.com/maloquacious/apprater/internal/config"
	"github.com/maloquacious/apprater/internal/logger"
	"github.com/maloquacious/apprater/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogChoose(t *testing.T) {
	tests := []struct {
		name           string
		response       Response
		wantSuppressed bool
		wantCount      int
		wantOpened     int
	}{
		{name: "rate", response: ResponseRate, wantSuppressed: true, wantCount: 4, wantOpened: 1},
		{name: "remind later", response: ResponseRemindLater, wantSuppressed: false, wantCount: 0},
		{name: "cancel reminders", response: ResponseCancel, wantSuppressed: true, wantCount: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := store.NewMemory()
			settings.SetLaunchCount(4)
			settings.SetFirstLaunchDate(t0.UnixMilli())
			link := &fakeLink{}
			p := New(settings, config.Thresholds{LaunchesUntilPrompt: 3},
				WithStoreLink("com.example.notes", link),
				WithLogger(logger.Nop()),
			)

			// the listener must see the state already updated
			var got []Response
			var suppressedAtCallback bool
			var countAtCallback int
			record := func(r Response) {
				got = append(got, r)
				suppressedAtCallback = settings.DoNotShowAgain()
				countAtCallback = settings.LaunchCount()
			}
			d := p.NewDialog(Listeners{OnRate: record, OnRemindLater: record, OnCancel: record})

			require.NoError(t, d.Choose(context.Background(), tt.response))
			assert.Equal(t, []Response{tt.response}, got)
			assert.Equal(t, tt.wantSuppressed, suppressedAtCallback)
			assert.Equal(t, tt.wantCount, countAtCallback)
			assert.Len(t, link.opened, tt.wantOpened)
		})
	}
}

func TestDialogChoose_NoListener(t *testing.T) {
	p, settings, _ := newTestPolicy(1, 0)
	d := p.NewDialog(Listeners{})

	require.NoError(t, d.Choose(context.Background(), ResponseCancel))
	assert.True(t, settings.DoNotShowAgain())
}

func TestDialogChoose_Unknown(t *testing.T) {
	p, settings, _ := newTestPolicy(1, 0)
	called := false
	d := p.NewDialog(Listeners{OnRate: func(Response) { called = true }})

	err := d.Choose(context.Background(), Response(99))
	assert.ErrorIs(t, err, ErrUnknownResponse)
	assert.False(t, called)
	assert.False(t, settings.DoNotShowAgain())
}

func TestDialogBuilder(t *testing.T) {
	p, _, _ := newTestPolicy(1, 0)
	d := NewDialogBuilder().
		Title("Enjoying Notes?").
		NeutralButton("Never").
		Build(p, Listeners{})

	assert.Equal(t, "Enjoying Notes?", d.Title)
	assert.Equal(t, DefaultMessage, d.Message)
	require.Len(t, d.Buttons, 3)
	assert.Equal(t, ResponseRate, d.Buttons[0].Response)
	assert.Equal(t, ResponseRemindLater, d.Buttons[1].Response)

	b, ok := d.Button(ResponseCancel)
	require.True(t, ok)
	assert.Equal(t, "Never", b.Label)

	_, ok = d.Button(Response(0))
	assert.False(t, ok)
}

func TestPolicyUsesDialogBuilder(t *testing.T) {
	settings := store.NewMemory()
	p := New(settings, config.Thresholds{}, WithDialogBuilder(NewDialogBuilder().Title("Rate Notes")))

	var title string
	presenter := PresenterFunc(func(_ context.Context, d *Dialog) error {
		title = d.Title
		return nil
	})
	require.NoError(t, p.ShowDialog(context.Background(), presenter, Listeners{}))
	assert.Equal(t, "Rate Notes", title)
}

func TestResponseString(t *testing.T) {
	assert.Equal(t, "rate", ResponseRate.String())
	assert.Equal(t, "remind later", ResponseRemindLater.String())
	assert.Equal(t, "cancel reminders", ResponseCancel.String())
	assert.Equal(t, "Response(7)", Response(7).String())
}

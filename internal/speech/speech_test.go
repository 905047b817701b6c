package speech

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

func waitResult(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("utterance never resolved")
		return nil
	}
}

func TestNullSpeaker(t *testing.T) {
	t.Parallel()
	var s NullSpeaker
	if err := waitResult(t, s.Speak(context.Background(), Utterance{Text: "ご"})); err != nil {
		t.Errorf("NullSpeaker.Speak() = %v, want nil", err)
	}
	s.CancelAll()
}

func TestTextSpeaker_WritesTranscript(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := NewTextSpeaker(&buf, 0)

	err := waitResult(t, s.Speak(context.Background(), Utterance{Text: "ねがいましてはぁ", Rate: 1.07, Pitch: 0.92}))
	if err != nil {
		t.Fatalf("Speak() = %v", err)
	}
	want := "♪ ねがいましてはぁ (rate 1.07, pitch 0.92)\n"
	if buf.String() != want {
		t.Errorf("transcript = %q, want %q", buf.String(), want)
	}
}

func TestTextSpeaker_Duration(t *testing.T) {
	t.Parallel()
	s := NewTextSpeaker(&bytes.Buffer{}, 100*time.Millisecond)
	tests := []struct {
		name string
		u    Utterance
		want time.Duration
	}{
		{"normal rate", Utterance{Text: "ごえん", Rate: 1}, 300 * time.Millisecond},
		{"double rate", Utterance{Text: "ごえん", Rate: 2}, 150 * time.Millisecond},
		{"zero rate treated as normal", Utterance{Text: "ご"}, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Duration(tt.u); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextSpeaker_CancelAll(t *testing.T) {
	t.Parallel()
	s := NewTextSpeaker(&bytes.Buffer{}, time.Hour)
	ch := s.Speak(context.Background(), Utterance{Text: "きゅうえんなーりー", Rate: 1})
	s.CancelAll()
	if err := waitResult(t, ch); !errors.Is(err, ErrCanceled) {
		t.Errorf("Speak() after CancelAll = %v, want ErrCanceled", err)
	}
	// Safe to repeat with nothing in flight.
	s.CancelAll()
}

func TestTextSpeaker_ContextCancel(t *testing.T) {
	t.Parallel()
	s := NewTextSpeaker(&bytes.Buffer{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Speak(ctx, Utterance{Text: "いち", Rate: 1})
	cancel()
	if err := waitResult(t, ch); !errors.Is(err, ErrCanceled) {
		t.Errorf("Speak() after ctx cancel = %v, want ErrCanceled", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTextSpeaker_WriteError(t *testing.T) {
	t.Parallel()
	s := NewTextSpeaker(failingWriter{}, time.Second)
	if err := waitResult(t, s.Speak(context.Background(), Utterance{Text: "に"})); err == nil {
		t.Error("expected write error to be reported")
	}
}

func TestCommandSpeaker_Args(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		speaker *CommandSpeaker
		u       Utterance
		want    []string
	}{
		{
			name:    "say with voice and rate",
			speaker: NewCommandSpeaker("say"),
			u:       Utterance{Text: "ごえんなーりー", Rate: 1.2, Voice: "Kyoko"},
			want:    []string{"-v", "Kyoko", "-r", "210", "ごえんなーりー"},
		},
		{
			name:    "say by path without voice",
			speaker: NewCommandSpeaker("/usr/bin/say"),
			u:       Utterance{Text: "に", Rate: 1},
			want:    []string{"-r", "175", "に"},
		},
		{
			name:    "say lowers the pitch of the opening phrase",
			speaker: NewCommandSpeaker("say"),
			u:       Utterance{Text: "ねがいましてはぁ", Rate: 1, Pitch: 0.92},
			want:    []string{"-r", "175", "[[pbas -1.4]]ねがいましてはぁ"},
		},
		{
			name:    "say raises the pitch",
			speaker: NewCommandSpeaker("say"),
			u:       Utterance{Text: "に", Pitch: 1.5},
			want:    []string{"[[pbas +7.0]]に"},
		},
		{
			name:    "say leaves normal pitch alone",
			speaker: NewCommandSpeaker("say"),
			u:       Utterance{Text: "ご", Pitch: 1.0},
			want:    []string{"ご"},
		},
		{
			name:    "other program gets fixed args and text",
			speaker: NewCommandSpeaker("espeak-ng", "-v", "ja"),
			u:       Utterance{Text: "さん", Rate: 1.5, Voice: "ignored", Pitch: 0.92},
			want:    []string{"-v", "ja", "さん"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.speaker.Args(tt.u); !slices.Equal(got, tt.want) {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandSpeaker_Speak(t *testing.T) {
	t.Parallel()
	s := NewCommandSpeaker("say")
	var gotName string
	var gotArgs []string
	s.run = func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}
	if err := waitResult(t, s.Speak(context.Background(), Utterance{Text: "よん"})); err != nil {
		t.Fatalf("Speak() = %v", err)
	}
	if gotName != "say" || !slices.Equal(gotArgs, []string{"よん"}) {
		t.Errorf("ran %s %q", gotName, gotArgs)
	}
}

func TestCommandSpeaker_ReportsFailure(t *testing.T) {
	t.Parallel()
	s := NewCommandSpeaker("say")
	boom := errors.New("exit status 1")
	s.run = func(context.Context, string, ...string) error { return boom }
	if err := waitResult(t, s.Speak(context.Background(), Utterance{Text: "ご"})); !errors.Is(err, boom) {
		t.Errorf("Speak() = %v, want %v", err, boom)
	}
}

func TestCommandSpeaker_CancelAll(t *testing.T) {
	t.Parallel()
	s := NewCommandSpeaker("say")
	started := make(chan struct{})
	s.run = func(ctx context.Context, _ string, _ ...string) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
	ch := s.Speak(context.Background(), Utterance{Text: "ろく"})
	<-started
	s.CancelAll()
	if err := waitResult(t, ch); !errors.Is(err, ErrCanceled) {
		t.Errorf("Speak() after CancelAll = %v, want ErrCanceled", err)
	}
}

func TestParseSayVoices(t *testing.T) {
	t.Parallel()
	listing := strings.Join([]string{
		"Alex                en_US    # Most people recognize me by my voice.",
		"Good News           en_US    # We must rejoice in this morbid voice.",
		"Kyoko               ja_JP    # こんにちは、私の名前はKyokoです。",
		"",
		"garbage line",
	}, "\n")
	voices, err := ParseSayVoices(strings.NewReader(listing))
	if err != nil {
		t.Fatal(err)
	}
	want := []Voice{
		{Name: "Alex", Lang: "en-US"},
		{Name: "Good News", Lang: "en-US"},
		{Name: "Kyoko", Lang: "ja-JP"},
	}
	if !slices.Equal(voices, want) {
		t.Errorf("ParseSayVoices() = %+v, want %+v", voices, want)
	}
}

func TestSortVoices(t *testing.T) {
	t.Parallel()
	voices := []Voice{
		{Name: "Samantha", Lang: "en-US"},
		{Name: "Otoya", Lang: "ja-JP"},
		{Name: "Alex", Lang: "en-US"},
		{Name: "Kyoko", Lang: "ja-JP"},
	}
	SortVoices(voices)
	names := make([]string, len(voices))
	for i, v := range voices {
		names[i] = v.Name
	}
	want := []string{"Kyoko", "Otoya", "Alex", "Samantha"}
	if !slices.Equal(names, want) {
		t.Errorf("SortVoices() order = %v, want %v", names, want)
	}
}

func TestSelectVoice(t *testing.T) {
	t.Parallel()
	voices := []Voice{
		{Name: "Alex", Lang: "en-US"},
		{Name: "Kyoko", Lang: "ja-JP"},
		{Name: "Microsoft Sayaka - Japanese (Japan)", Lang: "ja-JP"},
		{Name: "Microsoft Haruka Desktop", Lang: "ja-JP"},
	}
	tests := []struct {
		name       string
		voices     []Voice
		wantName   string
		prefName   string
		prefLang   string
		wantAbsent bool
	}{
		{name: "exact match", voices: voices, prefName: "Kyoko", prefLang: "ja-JP", wantName: "Kyoko"},
		{name: "substring match", voices: voices, prefName: "Haruka", prefLang: "en-US", wantName: "Microsoft Haruka Desktop"},
		{name: "language match", voices: voices, prefName: "Nobody", prefLang: "en-US", wantName: "Alex"},
		{name: "default voice", voices: voices, wantName: "Microsoft Sayaka - Japanese (Japan)"},
		{name: "case-insensitive substring", voices: voices, prefName: "kyo", wantName: "Kyoko"},
		{name: "first sorted voice", voices: voices[:2], wantName: "Kyoko"},
		{name: "empty list", voices: nil, wantAbsent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ok := SelectVoice(tt.voices, tt.prefName, tt.prefLang)
			if ok == tt.wantAbsent {
				t.Fatalf("SelectVoice() ok = %v", ok)
			}
			if !tt.wantAbsent && v.Name != tt.wantName {
				t.Errorf("SelectVoice() = %q, want %q", v.Name, tt.wantName)
			}
		})
	}
}

func TestIsJapanese(t *testing.T) {
	t.Parallel()
	for lang, want := range map[string]bool{"ja": true, "ja-JP": true, "ja_JP": true, "JA-jp": true, "en-US": false, "jav": false} {
		if got := IsJapanese(lang); got != want {
			t.Errorf("IsJapanese(%q) = %v, want %v", lang, got, want)
		}
	}
}

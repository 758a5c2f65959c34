package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestJob_CompositeText(t *testing.T) {
	job := &Job{
		Title:            "Senior Go Developer",
		Description:      "Build distributed systems.",
		Skills:           []string{"Go", "PostgreSQL", "Redis"},
		Responsibilities: []string{"Design services", "Review code"},
		Qualifications:   []string{"5+ years experience"},
	}

	text := job.CompositeText()

	wantOrder := []string{
		"Build distributed systems.",
		"Required Skills: Go, PostgreSQL, Redis",
		"Responsibilities:\nDesign services\nReview code",
		"Qualifications:\n5+ years experience",
	}
	last := -1
	for _, section := range wantOrder {
		idx := strings.Index(text, section)
		if idx < 0 {
			t.Fatalf("composite text missing section %q:\n%s", section, text)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
}

func TestJob_CompositeText_OmitsEmptySections(t *testing.T) {
	job := &Job{Description: "Just a description."}

	text := job.CompositeText()
	if text != "Just a description." {
		t.Errorf("expected bare description, got %q", text)
	}
	if strings.Contains(text, "Required Skills") || strings.Contains(text, "Responsibilities") {
		t.Errorf("empty sections must not be labeled")
	}
}

func TestJob_Scoreable(t *testing.T) {
	cases := []struct {
		name string
		job  Job
		want bool
	}{
		{"empty", Job{}, false},
		{"whitespace description", Job{Description: "   \n\t"}, false},
		{"description only", Job{Description: "real text"}, true},
		{"skills only", Job{Skills: []string{"Go"}}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.job.Scoreable(); got != c.want {
				t.Errorf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestNormalizeStringList(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, nil},
		{"slice", []string{" Go ", "", "SQL"}, []string{"Go", "SQL"}},
		{"any slice", []any{"Go", 42, "SQL"}, []string{"Go", "SQL"}},
		{"comma string", "Go, SQL, Docker", []string{"Go", "SQL", "Docker"}},
		{"newline string", "Design APIs\nShip features", []string{"Design APIs", "Ship features"}},
		{"json array", `["Go","SQL"]`, []string{"Go", "SQL"}},
		{"blank string", "   ", nil},
		{"unsupported type", 7, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NormalizeStringList(c.in)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestMatchSettings_EffectiveThresholdPct(t *testing.T) {
	cases := []struct {
		configured float64
		want       float64
	}{
		{50, 50},
		{0.10, 40}, // fraction scales to 10%, then clamps to the 40% floor
		{0.65, 65},
		{10, 40},
		{85, 85},
	}

	for _, c := range cases {
		s := DefaultMatchSettings()
		s.ThresholdPct = c.configured
		if got := s.EffectiveThresholdPct(); got != c.want {
			t.Errorf("threshold %v: expected %v, got %v", c.configured, c.want, got)
		}
	}
}

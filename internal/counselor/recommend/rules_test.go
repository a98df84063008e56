package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pathfinder-core/server/internal/counselor/gateway"
	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/pathfinder-core/server/internal/counselor/ratelimit"
)

func profileWith(interests ...string) *model.StudentProfile {
	p := model.NewStudentProfile()
	p.Merge(&model.ProfileDelta{Interests: interests})
	return p
}

func TestFallbackSoftwareBranch(t *testing.T) {
	careers := Fallback(profileWith("software", "computer"))

	if len(careers) == 0 || careers[0].Title != "Software Engineer" {
		t.Fatalf("careers = %+v, want Software Engineer first", careers)
	}
}

func TestFallbackEngineeringWithoutComputerKeywords(t *testing.T) {
	careers := Fallback(profileWith("physics"))

	if len(careers) != 1 || careers[0].Title != "Mechanical Engineer" {
		t.Fatalf("careers = %+v, want Mechanical Engineer", careers)
	}
}

func TestFallbackFirstClusterWins(t *testing.T) {
	// biology outranks engineering in the fixed priority order
	careers := Fallback(profileWith("biology", "computer"))

	if careers[0].Title != "Wildlife Biologist" {
		t.Errorf("careers = %+v, want the life-science cluster to win", careers)
	}
}

func TestFallbackScansSubjectsAndHobbies(t *testing.T) {
	p := model.NewStudentProfile()
	p.Merge(&model.ProfileDelta{Hobbies: []string{"painting"}})

	careers := Fallback(p)
	if careers[0].Title != "Graphic Designer" {
		t.Errorf("careers = %+v, want the creative cluster from a hobby match", careers)
	}
}

func TestFallbackNoMatchYieldsGenericRecord(t *testing.T) {
	careers := Fallback(model.NewStudentProfile())

	if len(careers) != 1 || careers[0].Title != genericCareer.Title {
		t.Fatalf("careers = %+v, want single generic record", careers)
	}
}

func TestFormatNumberedList(t *testing.T) {
	out := Format([]Career{
		{Title: "Software Engineer", Reason: "r", Education: "e", NextStep: "n"},
		{Title: "Data Scientist", Reason: "r2", Education: "e2", NextStep: "n2"},
	})

	for _, want := range []string{
		"1. Software Engineer",
		"2. Data Scientist",
		"Why it fits:",
		"Education:",
		"Next step:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
}

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(_ context.Context, _ string, _ gateway.Options) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestRecommendUsesGateway(t *testing.T) {
	g := New(&stubGenerator{response: "model recommendations"}, ratelimit.New(0), model.ResponseModelConfig{})

	out := g.Recommend(context.Background(), profileWith("biology"))
	if out != "model recommendations" {
		t.Errorf("Recommend() = %q, want model output", out)
	}
}

func TestRecommendGatewayErrorFallsBackToRules(t *testing.T) {
	g := New(&stubGenerator{err: errors.New("boom")}, ratelimit.New(0), model.ResponseModelConfig{})

	out := g.Recommend(context.Background(), profileWith("software"))
	if !strings.Contains(out, "Software Engineer") {
		t.Errorf("Recommend() = %q, want rule-based Software Engineer output", out)
	}
}

package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

type mockWriter struct {
	calls int
	line  models.SubjectLine
	err   error
}

func (m *mockWriter) GenerateSubject(ctx context.Context, category string) (models.SubjectLine, error) {
	m.calls++
	return m.line, m.err
}

type mapCache map[string]models.SubjectLine

func (m mapCache) Get(ctx context.Context, category string) (models.SubjectLine, bool) {
	line, ok := m[category]
	return line, ok
}

func (m mapCache) Set(ctx context.Context, category string, line models.SubjectLine) {
	m[category] = line
}

func TestSubjectsCachesGeneratedLine(t *testing.T) {
	writer := &mockWriter{line: models.SubjectLine{Subject: "Your card was locked"}}
	cache := mapCache{}
	s := NewSubjects(writer, cache)

	for i := 0; i < 3; i++ {
		line := s.Subject(context.Background(), models.CategoryBanking)
		if line.Subject != "Your card was locked" {
			t.Fatalf("unexpected subject %q", line.Subject)
		}
		if line.Purpose != DefaultSubject.Purpose {
			t.Errorf("expected the default purpose, got %q", line.Purpose)
		}
	}
	if writer.calls != 1 {
		t.Errorf("expected one generation, got %d", writer.calls)
	}
}

func TestSubjectsFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		writer   SubjectWriter
		category string
		want     string
	}{
		{"no writer", nil, models.CategoryDelivery, "Package Delivery Notification"},
		{"writer error", &mockWriter{err: errors.New("quota exceeded")}, models.CategoryHR, "HR Communication - Action Required"},
		{"blank subject", &mockWriter{line: models.SubjectLine{Subject: "  "}}, models.CategoryTechnology, "System Update Notification"},
		{"unknown category", nil, "gardening", "Important Update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := mapCache{}
			s := NewSubjects(tt.writer, cache)
			if got := s.Subject(context.Background(), tt.category); got.Subject != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.Subject)
			}
			if len(cache) != 0 {
				t.Error("fallback subjects must not be cached")
			}
		})
	}
}

func TestFallbackSubjectNormalizesCategory(t *testing.T) {
	if got := FallbackSubject("  Banking "); got.Subject != "Important Account Security Update Required" {
		t.Errorf("unexpected subject %q", got.Subject)
	}
}

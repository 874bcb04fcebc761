package dispatch

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// DefaultSubject is used when a category has neither a generated nor a fallback subject
var DefaultSubject = models.SubjectLine{
	Subject: "Important Update",
	Purpose: "Please review this internal message.",
}

var fallbackSubjects = map[string]models.SubjectLine{
	models.CategoryBanking: {
		Subject: "Important Account Security Update Required",
		Purpose: "To inform you about important security measures for your banking account.",
	},
	models.CategoryEcommerce: {
		Subject: "Order Status Update - Action Required",
		Purpose: "To provide you with updates regarding your recent purchase and next steps.",
	},
	models.CategoryDelivery: {
		Subject: "Package Delivery Notification",
		Purpose: "To notify you about the status of your package delivery.",
	},
	models.CategoryTechnology: {
		Subject: "System Update Notification",
		Purpose: "To inform you about important system updates and security patches.",
	},
	models.CategoryHR: {
		Subject: "HR Communication - Action Required",
		Purpose: "To provide you with important HR-related information requiring your attention.",
	},
	models.CategoryCustomized: {
		Subject: "Company Communication Update",
		Purpose: "To share important company information with you.",
	},
}

// FallbackSubject returns the static subject of a category
func FallbackSubject(category string) models.SubjectLine {
	if s, ok := fallbackSubjects[strings.ToLower(strings.TrimSpace(category))]; ok {
		return s
	}
	return DefaultSubject
}

// SubjectWriter generates a fresh subject line for a category
type SubjectWriter interface {
	GenerateSubject(ctx context.Context, category string) (models.SubjectLine, error)
}

// SubjectCache remembers generated subject lines per category
type SubjectCache interface {
	Get(ctx context.Context, category string) (models.SubjectLine, bool)
	Set(ctx context.Context, category string, line models.SubjectLine)
}

// Subjects is a SubjectSource that asks a writer, caches the answer and falls
// back to static subjects when the writer is unavailable.
type Subjects struct {
	writer SubjectWriter
	cache  SubjectCache
}

// NewSubjects creates a subject source. Both writer and cache may be nil.
func NewSubjects(writer SubjectWriter, cache SubjectCache) *Subjects {
	return &Subjects{writer: writer, cache: cache}
}

func (s *Subjects) Subject(ctx context.Context, category string) models.SubjectLine {
	if s.cache != nil {
		if line, ok := s.cache.Get(ctx, category); ok {
			return line
		}
	}
	if s.writer == nil {
		return FallbackSubject(category)
	}

	line, err := s.writer.GenerateSubject(ctx, category)
	if err != nil || strings.TrimSpace(line.Subject) == "" {
		logrus.Warnf("Subject generation failed for %q, using fallback: %v", category, err)
		return FallbackSubject(category)
	}
	if line.Purpose == "" {
		line.Purpose = DefaultSubject.Purpose
	}
	if s.cache != nil {
		s.cache.Set(ctx, category, line)
	}
	return line
}

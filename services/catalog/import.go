package catalog

import (
	"context"
	"encoding/csv"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ImportSummary counts what ImportCourses did with each row.
type ImportSummary struct {
	Inserted int
	Updated  int
	Skipped  int
}

// ImportCourses reads a CSV with the header
// title,description,author,max_enrollment,is_free,price,ends_at
// and creates DRAFT courses, updating live courses that share a title.
// ends_at is optional and RFC 3339.
func (s *Service) ImportCourses(ctx context.Context, r io.Reader) (ImportSummary, error) {
	var summary ImportSummary
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return summary, fmt.Errorf("read header: %w", err)
	}
	headerIndex := make(map[string]int, len(header))
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := headerIndex["title"]; !ok {
		return summary, errors.New("csv header must include title")
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("line %d: %w", line, err)
		}

		req, ok := courseFromRow(row, headerIndex)
		if !ok {
			s.log.Warn("Skipping course row", "line", line)
			summary.Skipped++
			continue
		}

		var existing courseModels.Course
		err = s.db.WithContext(ctx).Scopes(models.Alive).Where("title = ?", req.Title).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if res := s.CreateCourse(ctx, req); !res.IsSuccess {
				s.log.Warn("Skipping course row", "line", line, "reason", res.Message)
				summary.Skipped++
				continue
			}
			summary.Inserted++
		case err != nil:
			return summary, fmt.Errorf("line %d: %w", line, err)
		default:
			update := CourseUpdate{
				Description:   &req.Description,
				Author:        &req.Author,
				MaxEnrollment: &req.MaxEnrollment,
				IsFree:        &req.IsFree,
				Price:         &req.Price,
				EndsAt:        req.EndsAt,
			}
			if res := s.UpdateCourse(ctx, existing.ID, update); !res.IsSuccess {
				s.log.Warn("Skipping course row", "line", line, "reason", res.Message)
				summary.Skipped++
				continue
			}
			summary.Updated++
		}
	}
	s.log.Info("Course import finished", "inserted", summary.Inserted, "updated", summary.Updated, "skipped", summary.Skipped)
	return summary, nil
}

func courseFromRow(row []string, headerIndex map[string]int) (CourseCreate, bool) {
	field := func(name string) string {
		i, ok := headerIndex[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	req := CourseCreate{
		Title:       field("title"),
		Description: field("description"),
		Author:      field("author"),
		IsFree:      true,
		Price:       decimal.Zero,
	}
	if req.Title == "" {
		return req, false
	}
	if v := field("max_enrollment"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, false
		}
		req.MaxEnrollment = n
	}
	if v := field("is_free"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, false
		}
		req.IsFree = b
	}
	if v := field("price"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			return req, false
		}
		req.Price = p
	}
	if v := field("ends_at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return req, false
		}
		req.EndsAt = &t
	}
	return req, true
}

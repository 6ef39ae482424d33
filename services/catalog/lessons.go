package catalog

import (
	"context"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
)

type LessonCreate struct {
	Title           string
	Content         string
	VideoURL        string
	OrderIndex      int
	DurationMinutes int
}

func (s *Service) CreateLesson(ctx context.Context, courseID uint, req LessonCreate) result.Result[*courseModels.Lesson] {
	if found := s.GetCourse(ctx, courseID); !found.IsSuccess {
		return result.Fail[*courseModels.Lesson](found.Kind(), found.Message)
	}

	lesson := &courseModels.Lesson{
		CourseID:        courseID,
		Title:           req.Title,
		Content:         req.Content,
		VideoURL:        req.VideoURL,
		OrderIndex:      req.OrderIndex,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.db.WithContext(ctx).Create(lesson).Error; err != nil {
		s.log.Error("Failed to create lesson", "course_id", courseID, "error", err)
		return result.Fail[*courseModels.Lesson](result.Internal, "Failed to create lesson")
	}
	return result.Ok("Lesson created successfully", lesson)
}

func (s *Service) ListLessons(ctx context.Context, courseID uint) result.Result[[]courseModels.Lesson] {
	if found := s.GetCourse(ctx, courseID); !found.IsSuccess {
		return result.Fail[[]courseModels.Lesson](found.Kind(), found.Message)
	}
	var lessons []courseModels.Lesson
	if err := s.db.WithContext(ctx).Scopes(models.Alive).
		Where("course_id = ?", courseID).
		Order("order_index asc, id asc").
		Find(&lessons).Error; err != nil {
		s.log.Error("Failed to list lessons", "course_id", courseID, "error", err)
		return result.Fail[[]courseModels.Lesson](result.Internal, "Failed to fetch lessons")
	}
	return result.Ok("Lessons fetched successfully", lessons)
}

type PathCreate struct {
	Title       string
	Description string
}

func (s *Service) CreatePath(ctx context.Context, req PathCreate) result.Result[*courseModels.TrainingPath] {
	path := &courseModels.TrainingPath{Title: req.Title, Description: req.Description}
	if err := s.db.WithContext(ctx).Create(path).Error; err != nil {
		s.log.Error("Failed to create training path", "title", req.Title, "error", err)
		return result.Fail[*courseModels.TrainingPath](result.Internal, "Failed to create training path")
	}
	return result.Ok("Training path created successfully", path)
}

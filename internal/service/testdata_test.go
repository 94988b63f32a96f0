package service

import (
	"context"
	"time"

	"github.com/trainops/analytics-api/internal/models"
	"github.com/trainops/analytics-api/internal/repository"
)

// fakeStore serves a fixed dataset through the repository page interfaces,
// slicing by offset and limit the way the real store does.
type fakeStore struct {
	participants []models.Participant
	courses      []models.Course
	offerings    []models.CourseOffering
	enrollments  []models.Enrollment
	payments     []models.Payment
	licenses     []models.License

	pageCalls int
	err       error
}

func pageOf[T any](rows []T, q repository.PageQuery) []T {
	if q.Offset >= len(rows) {
		return nil
	}
	end := q.Offset + q.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[q.Offset:end]
}

func (f *fakeStore) datasets() *Datasets {
	return &Datasets{
		Participants: (*fakeParticipantSource)(f),
		Courses:      (*fakeCourseSource)(f),
		Enrollments:  (*fakeEnrollmentSource)(f),
		Payments:     (*fakePaymentSource)(f),
		Licenses:     (*fakeLicenseSource)(f),
		PageSize:     100,
	}
}

type fakeParticipantSource fakeStore

func (f *fakeParticipantSource) Page(_ context.Context, q repository.PageQuery) ([]models.Participant, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return pageOf(f.participants, q), nil
}

func (f *fakeParticipantSource) Count(_ context.Context, _ []repository.Condition) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.participants), nil
}

type fakeCourseSource fakeStore

func (f *fakeCourseSource) Page(_ context.Context, q repository.PageQuery) ([]models.Course, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return pageOf(f.courses, q), nil
}

func (f *fakeCourseSource) PageOfferings(_ context.Context, q repository.PageQuery) ([]models.CourseOffering, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return pageOf(f.offerings, q), nil
}

func (f *fakeCourseSource) CountActive(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, c := range f.courses {
		if c.Status == models.CourseStatusActive {
			count++
		}
	}
	return count, nil
}

type fakeEnrollmentSource fakeStore

func (f *fakeEnrollmentSource) Page(_ context.Context, q repository.PageQuery) ([]models.Enrollment, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return pageOf(f.enrollments, q), nil
}

func (f *fakeEnrollmentSource) CountSince(_ context.Context, _ time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.enrollments), nil
}

type fakePaymentSource fakeStore

func (f *fakePaymentSource) Page(_ context.Context, q repository.PageQuery) ([]models.Payment, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return pageOf(f.payments, q), nil
}

type fakeLicenseSource fakeStore

func (f *fakeLicenseSource) Page(_ context.Context, q repository.PageQuery) ([]models.License, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return pageOf(f.licenses, q), nil
}

func (f *fakeLicenseSource) Count(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.licenses), nil
}

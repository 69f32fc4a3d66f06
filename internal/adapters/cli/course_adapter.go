package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
)

// CourseAdapter is a thin adapter that translates CLI operations to CourseService calls.
type CourseAdapter struct {
	service primary.CourseService
	out     io.Writer
}

// NewCourseAdapter creates a new CourseAdapter with the given service.
func NewCourseAdapter(service primary.CourseService, out io.Writer) *CourseAdapter {
	return &CourseAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a course with one student per name.
func (a *CourseAdapter) Create(ctx context.Context, teacher models.TeacherID, name string, studentNames []string) (models.Course, error) {
	students := make([]models.Student, len(studentNames))
	for i, n := range studentNames {
		students[i] = models.Student{Name: n}
	}

	course, err := unwrap(a.service.CreateCourse(ctx, teacher, primary.CreateCourseRequest{
		Name:     name,
		Students: students,
	}))
	if err != nil {
		return models.Course{}, err
	}

	fmt.Fprintf(a.out, "✓ Created course %s: %s (%d students)\n", course.ID, course.Name, course.StudentCount())
	return course, nil
}

// List lists the teacher's courses.
func (a *CourseAdapter) List(ctx context.Context, teacher models.TeacherID) ([]models.Course, error) {
	courses, err := a.service.ListCourses(ctx, teacher)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if len(courses) == 0 {
		fmt.Fprintln(a.out, "No courses found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first course:")
		fmt.Fprintln(a.out, `  groupwork course create "Algebra I" --student Ada --student Grace`)
		return courses, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTUDENTS")
	fmt.Fprintln(w, "--\t----\t--------")
	for _, c := range courses {
		fmt.Fprintf(w, "%s\t%s\t%d\n", c.ID, c.Name, c.StudentCount())
	}
	w.Flush()

	return courses, nil
}

// Show displays a course and its roster.
func (a *CourseAdapter) Show(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (models.Course, error) {
	course, err := unwrap(a.service.GetCourse(ctx, teacher, courseID))
	if err != nil {
		return models.Course{}, err
	}

	fmt.Fprintf(a.out, "\nCourse: %s\n", course.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", course.Name)
	fmt.Fprintf(a.out, "Students: %d\n", course.StudentCount())
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for _, s := range course.Students {
		fmt.Fprintf(w, "  %s\t%s\n", s.ID, s.Name)
	}
	w.Flush()
	fmt.Fprintln(a.out)

	return course, nil
}

// Rename changes a course's name, keeping its roster.
func (a *CourseAdapter) Rename(ctx context.Context, teacher models.TeacherID, courseID models.CourseID, newName string) error {
	course, err := unwrap(a.service.GetCourse(ctx, teacher, courseID))
	if err != nil {
		return err
	}
	oldName := course.Name

	if _, err := unwrap(a.service.UpdateCourse(ctx, teacher, primary.UpdateCourseRequest{
		CourseID: courseID,
		Name:     newName,
		Students: course.Students,
	})); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Course %s renamed\n", courseID)
	fmt.Fprintf(a.out, "  %s → %s\n", oldName, newName)
	return nil
}

// AddStudent appends a new student to the roster.
func (a *CourseAdapter) AddStudent(ctx context.Context, teacher models.TeacherID, courseID models.CourseID, name string) (models.Course, error) {
	course, err := unwrap(a.service.GetCourse(ctx, teacher, courseID))
	if err != nil {
		return models.Course{}, err
	}

	students := append(append([]models.Student(nil), course.Students...), models.Student{Name: name})
	updated, err := unwrap(a.service.UpdateCourse(ctx, teacher, primary.UpdateCourseRequest{
		CourseID: courseID,
		Name:     course.Name,
		Students: students,
	}))
	if err != nil {
		return models.Course{}, err
	}

	added := updated.Students[len(updated.Students)-1]
	fmt.Fprintf(a.out, "✓ Added %s (%s) to %s\n", added.Name, added.ID, courseID)
	return updated, nil
}

// RemoveStudent drops a student from the roster. Recorded group sets keep the student.
func (a *CourseAdapter) RemoveStudent(ctx context.Context, teacher models.TeacherID, courseID models.CourseID, studentID models.StudentID) (models.Course, error) {
	course, err := unwrap(a.service.GetCourse(ctx, teacher, courseID))
	if err != nil {
		return models.Course{}, err
	}
	if !course.HasStudent(studentID) {
		return models.Course{}, fmt.Errorf("student %s is not on the roster of %s", studentID, courseID)
	}

	students := make([]models.Student, 0, len(course.Students)-1)
	for _, s := range course.Students {
		if s.ID != studentID {
			students = append(students, s)
		}
	}

	updated, err := unwrap(a.service.UpdateCourse(ctx, teacher, primary.UpdateCourseRequest{
		CourseID: courseID,
		Name:     course.Name,
		Students: students,
	}))
	if err != nil {
		return models.Course{}, err
	}

	fmt.Fprintf(a.out, "✓ Removed %s from %s\n", studentID, courseID)
	return updated, nil
}

// Delete deletes a course and its group sets.
func (a *CourseAdapter) Delete(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) error {
	if _, err := unwrap(a.service.DeleteCourse(ctx, teacher, courseID)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted course %s\n", courseID)
	return nil
}

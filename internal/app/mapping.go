package app

import (
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// Helper functions converting between persistence records and domain values.

func recordToStudents(records []secondary.StudentRecord) []models.Student {
	students := make([]models.Student, len(records))
	for i, r := range records {
		students[i] = models.Student{ID: models.StudentID(r.ID), Name: r.Name}
	}
	return students
}

func studentsToRecords(students []models.Student) []secondary.StudentRecord {
	records := make([]secondary.StudentRecord, len(students))
	for i, s := range students {
		records[i] = secondary.StudentRecord{ID: string(s.ID), Name: s.Name}
	}
	return records
}

func recordToCourse(r *secondary.CourseRecord) models.Course {
	return models.Course{
		ID:        models.CourseID(r.ID),
		TeacherID: models.TeacherID(r.TeacherID),
		Name:      r.Name,
		Students:  recordToStudents(r.Students),
	}
}

func recordsToGroups(records []secondary.GroupRecord) []models.Group {
	groups := make([]models.Group, len(records))
	for i, r := range records {
		groups[i] = models.NewGroup(recordToStudents(r.Members)...)
	}
	return groups
}

func groupsToRecords(groups []models.Group) []secondary.GroupRecord {
	records := make([]secondary.GroupRecord, len(groups))
	for i, g := range groups {
		records[i] = secondary.GroupRecord{Members: studentsToRecords(g.Members)}
	}
	return records
}

func recordToGroupSet(r *secondary.GroupSetRecord) models.GroupSet {
	return models.GroupSet{
		ID:        models.GroupSetID(r.ID),
		Name:      r.Name,
		CourseID:  models.CourseID(r.CourseID),
		Groups:    recordsToGroups(r.Groups),
		CreatedAt: r.CreatedAt,
	}
}

func groupSetToRecord(gs models.GroupSet) *secondary.GroupSetRecord {
	return &secondary.GroupSetRecord{
		ID:        string(gs.ID),
		CourseID:  string(gs.CourseID),
		Name:      gs.Name,
		Groups:    groupsToRecords(gs.Groups),
		CreatedAt: gs.CreatedAt,
	}
}

package scheduling

import (
	"testing"

	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedTimetable наполняет базу небольшим расписанием на двух преподавателей,
// двух лабораториях и двух курсах разных семестров.
func seedTimetable(t *testing.T, db *gorm.DB, svc *Service, fx fixtures) []models.Schedule {
	t.Helper()

	course5 := models.Course{Code: "JK01", CourseName: "Praktikum Jaringan Komputer", Semester: 5, SKS: 3}
	require.NoError(t, db.Create(&course5).Error)

	admin := Viewer{ID: 1, Role: models.RoleAdmin}
	inputs := []models.ScheduleInput{
		{CourseID: fx.course, LecturerID: fx.lecturerA, LabID: fx.lab1, Day: "Senin", TimeSlot: "08:00-10:00", ClassName: "A"},
		{CourseID: fx.course, LecturerID: fx.lecturerA, LabID: fx.lab1, Day: "Selasa", TimeSlot: "08:00-10:00", ClassName: "B"},
		{CourseID: course5.ID, LecturerID: fx.lecturerB, LabID: fx.lab2, Day: "Senin", TimeSlot: "08:00-10:00", ClassName: "A"},
		{CourseID: course5.ID, LecturerID: fx.lecturerB, LabID: fx.lab1, Day: "Rabu", TimeSlot: "13:00-15:00", ClassName: "C"},
	}

	var out []models.Schedule
	for _, in := range inputs {
		s, err := svc.Create(admin, in)
		require.NoError(t, err)
		out = append(out, *s)
	}
	return out
}

func ids(schedules []models.Schedule) []uint {
	out := make([]uint, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, s.ID)
	}
	return out
}

func TestListOrderedAndPreloaded(t *testing.T) {
	db := newTestDB(t)
	fx := seedCatalogs(t, db)
	svc := New(db, ScopeNone)
	seeded := seedTimetable(t, db, svc, fx)

	got, err := svc.List(Viewer{ID: 1, Role: models.RoleAdmin}, models.ScheduleFilter{})
	require.NoError(t, err)
	require.Equal(t, ids(seeded), ids(got))

	require.NotNil(t, got[0].Course)
	require.NotNil(t, got[0].Lecturer)
	require.NotNil(t, got[0].Laboratory)
	require.Equal(t, "Lab Komputer 1", got[0].Laboratory.LabName)
}

func TestLecturerSeesOnlyOwn(t *testing.T) {
	db := newTestDB(t)
	fx := seedCatalogs(t, db)
	svc := New(db, ScopeNone)
	seedTimetable(t, db, svc, fx)

	got, err := svc.List(Viewer{ID: fx.lecturerA, Role: models.RoleLecturer}, models.ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, s := range got {
		require.Equal(t, fx.lecturerA, s.LecturerID)
	}
}

func TestLecturerFilterCannotWiden(t *testing.T) {
	db := newTestDB(t)
	fx := seedCatalogs(t, db)
	svc := New(db, ScopeNone)
	seedTimetable(t, db, svc, fx)

	// Фильтр указывает на лабораторию с чужим занятием, но граница доступа
	// применяется раньше фильтров: чужие записи не появляются.
	got, err := svc.List(
		Viewer{ID: fx.lecturerA, Role: models.RoleLecturer},
		models.ScheduleFilter{LabID: fx.lab2},
	)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFilterConjunction(t *testing.T) {
	db := newTestDB(t)
	fx := seedCatalogs(t, db)
	svc := New(db, ScopeNone)
	seeded := seedTimetable(t, db, svc, fx)
	admin := Viewer{ID: 1, Role: models.RoleAdmin}

	tests := []struct {
		name   string
		filter models.ScheduleFilter
		want   []uint
	}{
		{"by lab", models.ScheduleFilter{LabID: fx.lab1}, []uint{seeded[0].ID, seeded[1].ID, seeded[3].ID}},
		{"by day", models.ScheduleFilter{Day: "Senin"}, []uint{seeded[0].ID, seeded[2].ID}},
		{"by slot", models.ScheduleFilter{TimeSlot: "13:00-15:00"}, []uint{seeded[3].ID}},
		{"by class", models.ScheduleFilter{ClassName: "A"}, []uint{seeded[0].ID, seeded[2].ID}},
		{"by semester", models.ScheduleFilter{Semester: 5}, []uint{seeded[2].ID, seeded[3].ID}},
		{"lab and day", models.ScheduleFilter{LabID: fx.lab1, Day: "Senin"}, []uint{seeded[0].ID}},
		{"day and class", models.ScheduleFilter{Day: "Senin", ClassName: "A"}, []uint{seeded[0].ID, seeded[2].ID}},
		{"semester and lab", models.ScheduleFilter{Semester: 5, LabID: fx.lab2}, []uint{seeded[2].ID}},
		{"no match", models.ScheduleFilter{Day: "Jumat"}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(admin, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestGetVisibility(t *testing.T) {
	db := newTestDB(t)
	fx := seedCatalogs(t, db)
	svc := New(db, ScopeNone)
	seeded := seedTimetable(t, db, svc, fx)

	own, err := svc.Get(Viewer{ID: fx.lecturerA, Role: models.RoleLecturer}, seeded[0].ID)
	require.NoError(t, err)
	require.Equal(t, seeded[0].ID, own.ID)
	require.NotNil(t, own.Course)

	// Чужое занятие для преподавателя неотличимо от несуществующего.
	_, err = svc.Get(Viewer{ID: fx.lecturerA, Role: models.RoleLecturer}, seeded[2].ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(Viewer{ID: 1, Role: models.RoleAdmin}, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	seedCatalogs(t, db)
	svc := New(db, ScopeNone)

	_, err := svc.List(Viewer{}, models.ScheduleFilter{})
	require.ErrorIs(t, err, ErrUnauthorized)
}

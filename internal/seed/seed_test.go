package seed

import (
	"testing"

	"github.com/mhafidz976/penjadwalan2/internal/scheduling"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Lab{}, &models.Course{}, &models.Schedule{}))
	return db
}

func TestRunPopulatesAndIsIdempotent(t *testing.T) {
	db := newSeedDB(t)
	svc := scheduling.New(db, scheduling.ScopeNone)

	require.NoError(t, Run(db, svc))

	var users, labs, courses, schedules int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Lab{}).Count(&labs).Error)
	require.NoError(t, db.Model(&models.Course{}).Count(&courses).Error)
	require.NoError(t, db.Model(&models.Schedule{}).Count(&schedules).Error)

	require.EqualValues(t, 9, users)
	require.EqualValues(t, 2, labs)
	require.EqualValues(t, 18, courses)
	// Исторические данные содержали накладки по преподавателю, часть
	// строк пропускается, но основная сетка должна встать.
	require.Greater(t, schedules, int64(30))

	// Повторный запуск ничего не добавляет.
	require.NoError(t, Run(db, svc))
	var usersAfter, schedulesAfter int64
	require.NoError(t, db.Model(&models.User{}).Count(&usersAfter).Error)
	require.NoError(t, db.Model(&models.Schedule{}).Count(&schedulesAfter).Error)
	require.Equal(t, users, usersAfter)
	require.Equal(t, schedules, schedulesAfter)
}

func TestRunProducesConflictFreeTimetable(t *testing.T) {
	db := newSeedDB(t)
	svc := scheduling.New(db, scheduling.ScopeNone)
	require.NoError(t, Run(db, svc))

	// Ни одна пара (лаборатория, день, интервал) и (преподаватель, день,
	// интервал) не должна встречаться дважды.
	var labDups, lecturerDups int64
	row := db.Raw(`SELECT count(*) FROM (
		SELECT lab_id FROM schedules GROUP BY lab_id, day, time_slot HAVING count(*) > 1
	)`).Scan(&labDups)
	require.NoError(t, row.Error)
	require.Zero(t, labDups)

	row = db.Raw(`SELECT count(*) FROM (
		SELECT lecturer_id FROM schedules GROUP BY lecturer_id, day, time_slot HAVING count(*) > 1
	)`).Scan(&lecturerDups)
	require.NoError(t, row.Error)
	require.Zero(t, lecturerDups)
}

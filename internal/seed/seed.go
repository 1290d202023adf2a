package seed

import (
	"fmt"
	"log/slog"

	"github.com/mhafidz976/penjadwalan2/internal/scheduling"
	"github.com/mhafidz976/penjadwalan2/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run наполняет пустую базу начальными данными: учетные записи, две
// лаборатории, каталог практикумов и недельное расписание. Повторный
// запуск ничего не делает, если пользователи уже есть.
//
// Занятия проводятся через сервис расписаний, а не прямой вставкой:
// исторические данные содержали пару накладок по преподавателю, такие
// строки пропускаются с предупреждением в логе.
func Run(db *gorm.DB, svc *scheduling.Service) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []struct {
		username string
		password string
		role     models.Role
		fullName string
	}{
		{"admin", "admin123", models.RoleAdmin, "Administrator"},
		{"labstaff", "staff123", models.RoleStaff, "Laboratory Staff"},
		{"bayu", "123456", models.RoleLecturer, "Mohammad Bayu A, S.Kom, M.Kom"},
		{"sutiyono", "123456", models.RoleLecturer, "Sutiyono, ST, M.Kom"},
		{"khilda", "123456", models.RoleLecturer, "Khilda Nistrina, S.Pd., M.Sc"},
		{"ahmad", "123456", models.RoleLecturer, "Ahmad Faojan M, S.Kom"},
		{"rosmalina", "123456", models.RoleLecturer, "Rosmalina, ST., M.Kom"},
		{"denny", "123456", models.RoleLecturer, "Denny Rusdianto, ST., M.Kom"},
		{"cecep", "123456", models.RoleLecturer, "Cecep Suwanda, S.Si., M.Kom"},
	}

	lecturerIDs := make(map[string]uint)
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		user := models.User{
			Username: u.username,
			Password: string(hashed),
			Role:     u.role,
			FullName: u.fullName,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create user %s: %w", u.username, err)
		}
		if u.role == models.RoleLecturer {
			lecturerIDs[u.username] = user.ID
		}
	}

	labs := []models.Lab{
		{LabName: "Lab Komputer 1", Capacity: 30},
		{LabName: "Lab Komputer 2", Capacity: 30},
	}
	for i := range labs {
		if err := db.Create(&labs[i]).Error; err != nil {
			return fmt.Errorf("create lab %s: %w", labs[i].LabName, err)
		}
	}
	lab1, lab2 := labs[0].ID, labs[1].ID

	coursesData := []struct {
		code, name    string
		semester, sks int
	}{
		{"MM01", "Praktikum Sistem Multimedia", 3, 3},
		{"GD01", "Praktikum Pengantar Pemograman Game", 3, 3},
		{"ML01", "Praktikum Pembelajaran Mesin", 5, 3},
		{"PV01", "Praktikum Pemograman Visual", 5, 3},
		{"OS01", "Praktikum Sistem Operasi dan Jaringan Komputer", 5, 3},
		{"IOT1", "Praktikum IoT", 7, 3},
		{"PS01", "Praktikum Pemodelan dan Simulasi", 5, 3},
		{"SP01", "Praktikum Statistik & Probabilitas", 1, 3},
		{"GH01", "Praktikum GitHub", 3, 2},
		{"BD01", "Praktikum Sistem Basis Data", 3, 3},
		{"ADK1", "Praktikum Aplikasi Dasar Komputer", 3, 3},
		{"SIG1", "Praktikum Sistem Informasi Geografis", 7, 3},
		{"APSI", "Praktikum Analisis dan Perancangan SI", 3, 3},
		{"ALGO", "Praktikum Algoritma dan Pemrograman 1", 1, 3},
		{"DA01", "Praktikum Data Analisis Dasar", 1, 3},
		{"PPSI", "Praktikum Pengelolaan Proyek SI", 5, 3},
		{"AK01", "Praktikum Akuntansi", 1, 3},
		{"BPTR", "Praktikum Bahasa Pemograman Tingkat Rendah", 3, 3},
	}

	courseIDs := make(map[string]uint)
	for _, cd := range coursesData {
		course := models.Course{Code: cd.code, CourseName: cd.name, Semester: cd.semester, SKS: cd.sks}
		if err := db.Create(&course).Error; err != nil {
			return fmt.Errorf("create course %s: %w", cd.code, err)
		}
		courseIDs[cd.code] = course.ID
	}

	admin := scheduling.Viewer{ID: 1, Role: models.RoleAdmin}
	createSched := func(labID uint, day, slot, courseCode, lecturer, className string) {
		_, err := svc.Create(admin, models.ScheduleInput{
			CourseID:   courseIDs[courseCode],
			LecturerID: lecturerIDs[lecturer],
			LabID:      labID,
			Day:        day,
			TimeSlot:   slot,
			ClassName:  className,
		})
		if err != nil {
			slog.Warn("Seed schedule skipped", "course", courseCode, "day", day,
				"time_slot", slot, "lecturer", lecturer, "error", err)
		}
	}

	// --- LAB 1 ---
	createSched(lab1, "Senin", "08:00-09:40", "MM01", "bayu", "B")
	createSched(lab1, "Senin", "10:00-11:40", "MM01", "bayu", "A")
	createSched(lab1, "Senin", "13:00-14:40", "GD01", "sutiyono", "A")
	createSched(lab1, "Senin", "15:00-16:40", "GD01", "sutiyono", "B")
	createSched(lab1, "Senin", "17:00-18:40", "MM01", "bayu", "C")

	createSched(lab1, "Selasa", "08:00-09:40", "ML01", "bayu", "A")
	createSched(lab1, "Selasa", "13:00-14:40", "ML01", "bayu", "B")
	createSched(lab1, "Selasa", "15:00-16:40", "PV01", "khilda", "A")
	createSched(lab1, "Selasa", "17:00-18:40", "OS01", "ahmad", "C")

	createSched(lab1, "Rabu", "10:00-11:40", "IOT1", "sutiyono", "A")
	createSched(lab1, "Rabu", "13:00-14:40", "IOT1", "sutiyono", "B")
	createSched(lab1, "Rabu", "17:00-18:40", "IOT1", "sutiyono", "C")

	createSched(lab1, "Jumat", "08:00-09:40", "GH01", "sutiyono", "A")
	createSched(lab1, "Jumat", "10:00-11:40", "BD01", "sutiyono", "A")
	createSched(lab1, "Jumat", "15:00-16:40", "ADK1", "denny", "A")
	createSched(lab1, "Jumat", "17:00-18:40", "SIG1", "ahmad", "C")

	createSched(lab1, "Sabtu", "08:00-09:40", "ADK1", "denny", "A")
	createSched(lab1, "Sabtu", "10:00-11:40", "PS01", "bayu", "A")
	createSched(lab1, "Sabtu", "13:00-14:40", "APSI", "denny", "A")
	createSched(lab1, "Sabtu", "17:00-18:40", "APSI", "denny", "C")

	// --- LAB 2 ---
	createSched(lab2, "Senin", "08:00-09:40", "DA01", "sutiyono", "B")
	createSched(lab2, "Senin", "10:00-11:40", "ADK1", "sutiyono", "B")
	createSched(lab2, "Senin", "13:00-14:40", "GH01", "sutiyono", "B")
	createSched(lab2, "Senin", "15:00-16:40", "DA01", "sutiyono", "A")
	createSched(lab2, "Senin", "17:00-18:40", "ADK1", "sutiyono", "C")

	createSched(lab2, "Selasa", "08:00-09:40", "BD01", "sutiyono", "A")
	createSched(lab2, "Selasa", "10:00-11:40", "PPSI", "rosmalina", "A")
	createSched(lab2, "Selasa", "13:00-14:40", "BD01", "sutiyono", "B")
	createSched(lab2, "Selasa", "15:00-16:40", "ADK1", "sutiyono", "A")
	createSched(lab2, "Selasa", "17:00-18:40", "BD01", "sutiyono", "C")

	createSched(lab2, "Rabu", "08:00-09:40", "GH01", "sutiyono", "A")
	createSched(lab2, "Rabu", "10:00-11:40", "SP01", "rosmalina", "A")
	createSched(lab2, "Rabu", "15:00-16:40", "AK01", "khilda", "A")

	createSched(lab2, "Kamis", "08:00-09:40", "ALGO", "cecep", "A")
	createSched(lab2, "Kamis", "10:00-11:40", "ALGO", "ahmad", "A")
	createSched(lab2, "Kamis", "13:00-14:40", "ALGO", "ahmad", "B")
	createSched(lab2, "Kamis", "15:00-16:40", "OS01", "sutiyono", "A")
	createSched(lab2, "Kamis", "17:00-18:40", "ALGO", "ahmad", "C")

	createSched(lab2, "Jumat", "08:00-09:40", "SIG1", "ahmad", "A")
	createSched(lab2, "Jumat", "10:00-11:40", "SIG1", "ahmad", "B")
	createSched(lab2, "Jumat", "17:00-18:40", "BD01", "sutiyono", "C")

	createSched(lab2, "Sabtu", "08:00-09:40", "OS01", "ahmad", "A")
	createSched(lab2, "Sabtu", "10:00-11:40", "OS01", "ahmad", "B")
	createSched(lab2, "Sabtu", "13:00-14:40", "BPTR", "ahmad", "B")
	createSched(lab2, "Sabtu", "15:00-16:40", "BPTR", "ahmad", "C")

	slog.Info("База данных инициализирована начальными данными.")
	return nil
}

package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportSchedulesHandler выгружает расписание в книгу Excel: по листу на
// лабораторию, строки упорядочены по дню недели и интервалу. Видимость и
// фильтры те же, что и у обычного списка.
func ExportSchedulesHandler(c *gin.Context) {
	schedules, err := Scheduler.List(viewerFromContext(c), filterFromQuery(c))
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	byLab := make(map[uint][]models.Schedule)
	var labOrder []uint
	for _, s := range schedules {
		if _, seen := byLab[s.LabID]; !seen {
			labOrder = append(labOrder, s.LabID)
		}
		byLab[s.LabID] = append(byLab[s.LabID], s)
	}
	sort.Slice(labOrder, func(i, j int) bool { return labOrder[i] < labOrder[j] })

	f := excelize.NewFile()
	headers := []string{"Hari", "Jam", "Kode", "Mata Kuliah", "Kelas", "Dosen"}

	for sheetIdx, labID := range labOrder {
		rows := byLab[labID]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Day.Index() != rows[j].Day.Index() {
				return rows[i].Day.Index() < rows[j].Day.Index()
			}
			return rows[i].TimeSlot < rows[j].TimeSlot
		})

		sheetName := fmt.Sprintf("Lab %d", labID)
		if len(rows) > 0 && rows[0].Laboratory != nil {
			sheetName = rows[0].Laboratory.LabName
		}
		if sheetIdx == 0 {
			f.SetSheetName("Sheet1", sheetName)
		} else {
			f.NewSheet(sheetName)
		}

		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheetName, cell, header)
		}

		for i, s := range rows {
			row := i + 2
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), string(s.Day))
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), string(s.TimeSlot))
			if s.Course != nil {
				f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), s.Course.Code)
				f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), s.Course.CourseName)
			}
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), s.ClassName)
			if s.Lecturer != nil {
				f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.Lecturer.FullName)
			}
		}
	}

	fileName := fmt.Sprintf("jadwal_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

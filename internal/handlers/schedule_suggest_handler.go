package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mhafidz976/penjadwalan2/config"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
)

// Стандартная сетка пар; ИИ обязан выбирать интервалы только из нее.
var standardSlots = []string{
	"08:00-09:40", "10:00-11:40", "13:00-14:40", "15:00-16:40", "17:00-18:40",
}

// extractJSON находит первую валидную и полную JSON-структуру в строке.
// Умеет "вырезать" JSON из markdown-блоков (```json ... ```) и другого
// текстового "мусора" от ИИ.
func extractJSON(raw string) string {
	if jsonBlockStart := strings.Index(raw, "```json"); jsonBlockStart != -1 {
		raw = raw[jsonBlockStart+7:]
		if jsonBlockEnd := strings.Index(raw, "```"); jsonBlockEnd != -1 {
			raw = raw[:jsonBlockEnd]
		}
	} else if blockStart := strings.Index(raw, "```"); blockStart != -1 {
		raw = raw[blockStart+3:]
		if blockEnd := strings.Index(raw, "```"); blockEnd != -1 {
			raw = raw[:blockEnd]
		}
	}

	start := strings.Index(raw, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(raw, "}")
	if end == -1 || end < start {
		return ""
	}

	potentialJSON := raw[start : end+1]
	if json.Valid([]byte(potentialJSON)) {
		return potentialJSON
	}

	slog.Warn("AI response contained a malformed or incomplete JSON object.", "snippet", potentialJSON)
	return ""
}

// SuggestScheduleInput - для какого курса, преподавателя и группы подбираем место.
type SuggestScheduleInput struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	LecturerID uint   `json:"lecturer_id" binding:"required"`
	ClassName  string `json:"class_name" binding:"required"`
}

// SlotSuggestion - один вариант размещения занятия.
type SlotSuggestion struct {
	LabID    uint   `json:"lab_id"`
	Day      string `json:"day"`
	TimeSlot string `json:"time_slot"`
}

// SuggestScheduleHandler просит Gemini предложить свободные места для
// занятия. Каждый вариант от ИИ перепроверяется через проверку конфликтов,
// непроходные отбрасываются - наружу уходят только размещаемые слоты.
func SuggestScheduleHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI suggestions are not configured"})
		return
	}

	var input SuggestScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var course models.Course
	if err := config.DB.First(&course, input.CourseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	var labs []models.Lab
	if err := config.DB.Order("id asc").Find(&labs).Error; err != nil || len(labs) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load labs"})
		return
	}
	var occupied []models.Schedule
	if err := config.DB.Find(&occupied).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedules"})
		return
	}

	prompt := constructSuggestPrompt(course, input.LecturerID, labs, occupied)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	iter := config.GeminiClient.GenerateContentStream(ctx, genai.Text(prompt))
	var fullResponse strings.Builder

	for {
		resp, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "no more items in iterator") {
				break
			}
			slog.Error("Error during AI stream", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stream suggestions from AI"})
			return
		}
		if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			for _, part := range resp.Candidates[0].Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					fullResponse.WriteString(string(txt))
				}
			}
		}
	}

	cleanJSON := extractJSON(fullResponse.String())
	if cleanJSON == "" {
		slog.Error("AI returned invalid or incomplete data (no valid JSON found)", "response", fullResponse.String())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ИИ вернул некорректные данные. Попробуйте снова."})
		return
	}

	var aiResponse struct {
		Suggestions []SlotSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(cleanJSON), &aiResponse); err != nil {
		slog.Error("Failed to parse extracted JSON from AI", "json", cleanJSON, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse suggestions from AI"})
		return
	}

	knownLabs := make(map[uint]bool)
	for _, lab := range labs {
		knownLabs[lab.ID] = true
	}

	// ИИ регулярно выдумывает занятые или несуществующие места - доверяем
	// только тем вариантам, которые проходят проверку конфликтов.
	var valid []SlotSuggestion
	for _, s := range aiResponse.Suggestions {
		if !knownLabs[s.LabID] {
			slog.Warn("AI suggested a lab that does not exist", "lab_id", s.LabID)
			continue
		}
		conflict, err := Scheduler.CheckInput(models.ScheduleInput{
			CourseID:   input.CourseID,
			LecturerID: input.LecturerID,
			LabID:      s.LabID,
			Day:        s.Day,
			TimeSlot:   s.TimeSlot,
			ClassName:  input.ClassName,
		})
		if err != nil {
			slog.Warn("AI suggestion failed validation", "day", s.Day, "time_slot", s.TimeSlot, "error", err)
			continue
		}
		if conflict != nil {
			continue
		}
		valid = append(valid, s)
	}

	if len(valid) == 0 {
		slog.Warn("No AI suggestion survived conflict validation", "ai_response", cleanJSON)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ИИ не смог предложить свободное место. Попробуйте снова."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": valid})
}

// constructSuggestPrompt создает строгое задание для ИИ: только JSON,
// только существующие лаборатории и интервалы из сетки, занятые места перечислены.
func constructSuggestPrompt(course models.Course, lecturerID uint, labs []models.Lab, occupied []models.Schedule) string {
	var labLines []string
	for _, lab := range labs {
		labLines = append(labLines, fmt.Sprintf(`{"lab_id": %d, "name": %q}`, lab.ID, lab.LabName))
	}

	var busyLines []string
	for _, s := range occupied {
		line := fmt.Sprintf(`lab %d занята: %s %s`, s.LabID, s.Day, s.TimeSlot)
		if s.LecturerID == lecturerID {
			line += " (и преподаватель занят)"
		}
		busyLines = append(busyLines, line)
	}

	var dayNames []string
	for _, d := range models.Days {
		dayNames = append(dayNames, string(d))
	}

	return fmt.Sprintf(`
	**Критически важная задача**: Подбери свободные места для занятия курса %q в формате JSON.

	**Строгие правила**:
	1.  **Только JSON**: Твой ответ должен быть ИСКЛЮЧИТЕЛЬНО валидным JSON объектом. Никакого текста до или после JSON, никаких markdown-блоков, никаких комментариев.
	2.  **Дни недели**: Используй только значения: [%s].
	3.  **Интервалы**: Поле "time_slot" может принимать **ТОЛЬКО** значения из списка: [%s].
	4.  **Лаборатории**: Используй только lab_id из списка: [%s].
	5.  **Занятые места**: Нельзя предлагать комбинации из списка занятых:
	%s
	6.  Предложи от 3 до 5 вариантов, равномерно распределенных по неделе.

	**Требуемая структура JSON**:
	{
	  "suggestions": [
		{ "lab_id": 1, "day": "Senin", "time_slot": "08:00-09:40" }
	  ]
	}
	`, course.CourseName,
		strings.Join(dayNames, ", "),
		strings.Join(standardSlots, ", "),
		strings.Join(labLines, ", "),
		strings.Join(busyLines, "\n\t"))
}

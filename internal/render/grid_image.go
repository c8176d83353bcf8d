package render

import (
	"bytes"
	"image/color"

	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	headerHeight    = 70
	leftLabelsWidth = 150
	cellPaddingX    = 8
	cellPaddingY    = 6
	entryLineHeight = 14
	entryGap        = 8
	minRowHeight    = 70.0
	borderRadius    = 5.0
	totalGridDays   = 6
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	slotLabelColor = color.RGBA{110, 115, 120, 200}
	gridLineColor  = color.NRGBA{150, 150, 150, 255}
	evenColColor   = color.NRGBA{240, 240, 240, 255}
	oddColColor    = color.NRGBA{225, 225, 225, 255}

	entryBgColor       = color.RGBA{133, 193, 85, 90}
	entryViolatesColor = color.RGBA{255, 140, 150, 160} // Розовая подложка для нарушений
	entryTextColor     = color.RGBA{20, 24, 28, 230}
	violatesTextColor  = color.RGBA{120, 40, 50, 255}
)

// дни недели по-русски для шапки
var weekdayLabels = map[string]string{
	"monday":    "Понедельник",
	"tuesday":   "Вторник",
	"wednesday": "Среда",
	"thursday":  "Четверг",
	"friday":    "Пятница",
	"saturday":  "Суббота",
}

// GridImage рисует сетку расписания в PNG: колонки — дни недели,
// строки — временные слоты, в ячейке может лежать несколько записей
// (двойное бронирование видно визуально). Записи, нарушающие
// доступность преподавателя, подсвечиваются розовым
func GridImage(grid *service.TimetableGrid, title string) ([]byte, error) {
	rowHeights := calculateRowHeights(grid)
	height := headerHeight
	for _, h := range rowHeights {
		height += int(h)
	}
	if height == headerHeight {
		height += int(minRowHeight)
	}

	dc := createCanvas(imageWidth, height)
	dayWidth := (imageWidth - leftLabelsWidth) / totalGridDays

	drawTitle(dc, title)
	drawColumnHeaders(dc, dayWidth)
	drawRows(dc, grid, rowHeights, dayWidth)

	return encodeImage(dc)
}

// calculateRowHeights высота строки зависит от самой заполненной
// ячейки слота: записи укладываются стопкой
func calculateRowHeights(grid *service.TimetableGrid) []float64 {
	heights := make([]float64, len(grid.TimeSlots))
	for i, slot := range grid.TimeSlots {
		maxEntries := 0
		for _, day := range service.Weekdays {
			if n := len(grid.Entries(day, slot)); n > maxEntries {
				maxEntries = n
			}
		}
		h := float64(cellPaddingY*2) + float64(maxEntries)*(3*entryLineHeight+entryGap)
		if h < minRowHeight {
			h = minRowHeight
		}
		heights[i] = h
	}
	return heights
}

func createCanvas(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

func drawTitle(dc *gg.Context, title string) {
	if title == "" {
		return
	}
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, float64(headerHeight)/4, 0.5, 0.5)
}

func drawColumnHeaders(dc *gg.Context, dayWidth int) {
	dc.SetColor(textColor)
	for i, day := range service.Weekdays {
		x := float64(leftLabelsWidth + i*dayWidth + dayWidth/2)
		dc.DrawStringAnchored(weekdayLabels[day], x, float64(headerHeight)-14, 0.5, 0.5)
	}
}

func drawRows(dc *gg.Context, grid *service.TimetableGrid, rowHeights []float64, dayWidth int) {
	y := float64(headerHeight)
	for i, slot := range grid.TimeSlots {
		rowH := rowHeights[i]

		dc.SetColor(slotLabelColor)
		dc.DrawStringAnchored(slot, float64(leftLabelsWidth)-10, y+rowH/2, 1, 0.5)

		for dayIdx, day := range service.Weekdays {
			x := float64(leftLabelsWidth + dayIdx*dayWidth)
			drawCellBackground(dc, x, y, float64(dayWidth), rowH, dayIdx)
			drawCellEntries(dc, grid.Entries(day, slot), x, y, float64(dayWidth))
		}

		dc.SetColor(gridLineColor)
		dc.SetLineWidth(0.3)
		dc.DrawLine(float64(leftLabelsWidth), y, imageWidth, y)
		dc.Stroke()

		y += rowH
	}
}

func drawCellBackground(dc *gg.Context, x, y, w, h float64, dayIdx int) {
	if dayIdx%2 == 0 {
		dc.SetColor(evenColColor)
	} else {
		dc.SetColor(oddColColor)
	}
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
}

func drawCellEntries(dc *gg.Context, entries []service.GridEntry, x, y, w float64) {
	entryY := y + cellPaddingY
	entryW := w - float64(cellPaddingX*2)
	entryH := float64(3 * entryLineHeight)

	for _, entry := range entries {
		bg := entryBgColor
		txt := entryTextColor
		if entry.ViolatesAvailability {
			bg = entryViolatesColor
			txt = violatesTextColor
		}

		dc.SetColor(bg)
		dc.DrawRoundedRectangle(x+cellPaddingX, entryY, entryW, entryH, borderRadius)
		dc.Fill()

		dc.SetColor(txt)
		txtX := x + cellPaddingX + 6
		dc.DrawStringAnchored(clipText(entry.Subject, 30), txtX, entryY+entryLineHeight-4, 0, 0.5)
		dc.DrawStringAnchored(clipText(entry.Teacher, 30), txtX, entryY+2*entryLineHeight-4, 0, 0.5)
		dc.DrawStringAnchored(clipText(entry.Space, 30), txtX, entryY+3*entryLineHeight-4, 0, 0.5)

		entryY += entryH + entryGap
	}
}

// clipText обрезает длинные названия, чтобы не вылезать из ячейки
func clipText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/stretchr/testify/require"
)

func sampleGrid() *service.TimetableGrid {
	assignments := []model.Assignment{
		{
			Subject:    &model.Subject{Name: "Cálculo"},
			Teacher:    &model.User{FullName: "Ana Souza"},
			Space:      &model.Space{Name: "Sala 101"},
			ClassGroup: &model.ClassGroup{Name: "Turma A"},
			Schedules: []model.Schedule{
				{Weekday: "monday", StartTime: "08:00:00", EndTime: "10:00:00"},
			},
		},
		{
			Subject:    &model.Subject{Name: "Física"},
			Teacher:    &model.User{FullName: "Bruno Lima"},
			Space:      &model.Space{Name: "Lab 2"},
			ClassGroup: &model.ClassGroup{Name: "Turma A"},
			Violates:   model.Flag(true),
			Schedules: []model.Schedule{
				{Weekday: "monday", StartTime: "08:00:00", EndTime: "10:00:00"},
			},
		},
	}
	return service.BuildTimetableGrid(assignments)
}

func TestGridImageProducesPNG(t *testing.T) {
	data, err := GridImage(sampleGrid(), "Turma A")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, imageWidth, img.Bounds().Dx())
}

func TestGridImageEmptyGrid(t *testing.T) {
	data, err := GridImage(service.BuildTimetableGrid(nil), "")
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestClipText(t *testing.T) {
	require.Equal(t, "short", clipText("short", 30))
	long := "Laboratório de Química Orgânica Avançada"
	clipped := clipText(long, 20)
	require.Len(t, []rune(clipped), 20)
}

package export

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"

	"github.com/contesthub/contest-api/internal/domain"
)

const (
	sheetName = "Leaderboard"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PNGContentType  = "image/png"
)

var header = []any{
	"Rank", "Previous Rank", "Contestant", "Username", "Entry", "Marks",
	"Design", "Functionality", "Usability", "Market Potential", "Average",
}

// LeaderboardXLSX renders the leaderboard rows, in order, as a single-sheet workbook.
func LeaderboardXLSX(c domain.Contest, rows []domain.LeaderboardRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("f.SetSheetName -> %w", err)
	}
	if err := f.SetCellValue(sheetName, "A1", c.Name); err != nil {
		return nil, fmt.Errorf("f.SetCellValue -> %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A2", &header); err != nil {
		return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}

		values := []any{
			rankCell(r.CurrentRank), rankCell(r.PreviousRank), displayName(r), username(r), r.EntryTitle, r.MarksGiven,
			r.Rating.Design, r.Rating.Functionality, r.Rating.Usability, r.Rating.MarketPotential, r.Rating.Average,
		}
		if err = f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("f.WriteToBuffer -> %w", err)
	}

	return buf.Bytes(), nil
}

// LeaderboardPNG draws one bar per ranked contestant with their average rating.
func LeaderboardPNG(c domain.Contest, rows []domain.LeaderboardRow) ([]byte, error) {
	var bars []chart.Value
	top := 10.0
	for _, r := range rows {
		if r.CurrentRank == 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("#%d %s", r.CurrentRank, displayName(r)),
			Value: r.Rating.Average,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("3b82f6"),
				StrokeColor: drawing.ColorFromHex("1d4ed8"),
				StrokeWidth: 1,
			},
		})
		if r.Rating.Average > top {
			top = r.Rating.Average
		}
	}

	if len(bars) == 0 {
		return placeholder(fmt.Sprintf("%s has no ranked contestants yet", c.Name))
	}

	graph := chart.BarChart{
		Title:  c.Name,
		Width:  160 + 120*len(bars),
		Height: 480,
		Background: chart.Style{
			Padding: chart.Box{Top: 48},
		},
		BarWidth:   60,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("graph.Render -> %w", err)
	}

	return buf.Bytes(), nil
}

// placeholder renders an empty axis titled with msg.
func placeholder(msg string) ([]byte, error) {
	graph := chart.BarChart{
		Title:      msg,
		Width:      480,
		Height:     240,
		Background: chart.Style{Padding: chart.Box{Top: 48}},
		BarWidth:   60,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 10},
		},
		Bars: []chart.Value{{Label: "no ratings", Value: 0}},
	}

	buf := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("graph.Render -> %w", err)
	}

	return buf.Bytes(), nil
}

func rankCell(rank int) any {
	if rank == 0 {
		return "-"
	}

	return rank
}

func displayName(r domain.LeaderboardRow) string {
	if r.User != nil && r.User.Name != "" {
		return r.User.Name
	}

	return fmt.Sprintf("User %d", r.UserID)
}

func username(r domain.LeaderboardRow) string {
	if r.User == nil {
		return ""
	}

	return r.User.Username
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
)

const (
	boardOrigin = 20.0
	cellSize    = 9.0
	stoneRadius = 4.0
)

// lastPlacement maps every point to the most recent placement that covered it.
func lastPlacement(record game.Record) map[game.Point]game.Placement {
	out := make(map[game.Point]game.Placement)
	for _, pl := range record.Placements {
		for _, p := range pl.Coordinates {
			out[p] = pl
		}
	}
	return out
}

func renderRecord(record game.Record, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Match record "+record.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Room %s", record.Room))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Record %s, %s - %s", record.ID,
		record.StartedAt.Format("2006-01-02 15:04"), record.EndedAt.Format("15:04")))

	drawGrid(pdf)
	drawStones(pdf, lastPlacement(record))

	pdf.AddPage()
	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(20, 6, "Turn", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Player", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Stones", "1", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 9)
	for _, pl := range record.Placements {
		coords := make([]string, len(pl.Coordinates))
		for i, p := range pl.Coordinates {
			coords[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		pdf.CellFormat(20, 5, fmt.Sprint(pl.Turn), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 5, pl.Player.Color(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(0, 5, strings.Join(coords, " "), "1", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

func drawGrid(pdf *gofpdf.Fpdf) {
	top := boardOrigin + 10
	end := float64(game.BoardSize-1) * cellSize
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i := 0; i < game.BoardSize; i++ {
		offset := float64(i) * cellSize
		pdf.Line(boardOrigin, top+offset, boardOrigin+end, top+offset)
		pdf.Line(boardOrigin+offset, top, boardOrigin+offset, top+end)
	}
}

func drawStones(pdf *gofpdf.Fpdf, stones map[game.Point]game.Placement) {
	top := boardOrigin + 10
	pdf.SetFont("Helvetica", "", 6)
	for p, pl := range stones {
		x := boardOrigin + float64(p.X)*cellSize
		y := top + float64(p.Y)*cellSize
		label := fmt.Sprint(pl.Turn)
		if pl.Player == game.Black {
			pdf.SetFillColor(0, 0, 0)
			pdf.SetTextColor(255, 255, 255)
		} else {
			pdf.SetFillColor(255, 255, 255)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Circle(x, y, stoneRadius, "FD")
		pdf.Text(x-pdf.GetStringWidth(label)/2, y+1, label)
	}
	pdf.SetTextColor(0, 0, 0)
}

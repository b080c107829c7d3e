// Package pdf implementa la generación de la ficha de ganado imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + código  │  Estado + fecha de inclusión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: Peso actual | Coste acumulado | Edad | Coste/kg  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Control de pesos (fecha | peso | notas)             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Coste histórico (fecha | origen | método | importe) │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Ganaderia-api/internal/application/report"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.CattleReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ report.CattleReportGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateCattleReport genera el PDF de la ficha y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateCattleReport(
	_ context.Context,
	profile *entity.CattleProfile,
	weights []*entity.WeightEntry,
	costs []*entity.CostHistoryEntry,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de Ganado "+profile.SequenceCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(profile))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(profile))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Control de pesos
	m.AddRows(sectionTitleRow("CONTROL DE PESOS"))
	m.AddRows(weightHeaderRow())
	for _, r := range weightRows(weights) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	// Coste histórico
	m.AddRows(sectionTitleRow("COSTE HISTÓRICO"))
	m.AddRows(costHeaderRow())
	for _, r := range costRows(costs) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + código (izq) y estado + fecha de inclusión (der).
func headerRow(profile *entity.CattleProfile) core.Row {
	fecha := profile.InclusionDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(profile.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Código: %s   |   Arete: %s",
				profile.SequenceCode, nonEmpty(profile.EarTag, "—"),
			), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FICHA DE GANADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(stateLabel(profile.State), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Inclusión: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// metricsRow: las cuatro métricas derivadas de la ficha.
func metricsRow(profile *entity.CattleProfile) core.Row {
	metric := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		metric("PESO ACTUAL", profile.CurrentWeight.StringFixed(2)+" kg"),
		metric("COSTE ACUMULADO", profile.TotalCost.StringFixed(2)+" "+profile.Currency),
		metric("EDAD", fmt.Sprintf("%d días", profile.AgeDays)),
		metric("COSTE / KG", profile.CostPerKg.StringFixed(2)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func weightHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeader("Fecha", 3, align.Left),
		tableHeader("Peso (kg)", 3, align.Right),
		tableHeader("Notas", 6, align.Left),
	)
}

func weightRows(weights []*entity.WeightEntry) []core.Row {
	result := make([]core.Row, 0, len(weights))
	for _, w := range weights {
		result = append(result, row.New(6).Add(
			tableCell(w.Date.Format("02/01/2006"), 3, align.Left),
			tableCell(w.Weight.StringFixed(2), 3, align.Right),
			tableCell(nonEmpty(w.Notes, "—"), 6, align.Left),
		))
	}
	if len(result) == 0 {
		result = append(result, emptyTableRow("Sin registros de peso"))
	}
	return result
}

func costHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeader("Fecha", 2, align.Left),
		tableHeader("Documento origen", 5, align.Left),
		tableHeader("Método", 2, align.Center),
		tableHeader("Importe", 3, align.Right),
	)
}

func costRows(costs []*entity.CostHistoryEntry) []core.Row {
	result := make([]core.Row, 0, len(costs))
	for _, c := range costs {
		result = append(result, row.New(6).Add(
			tableCell(c.AllocationDate.Format("02/01/2006"), 2, align.Left),
			tableCell(nonEmpty(c.SourceDocument, "—"), 5, align.Left),
			tableCell(c.Method, 2, align.Center),
			tableCell(c.AllocatedAmount.StringFixed(2)+" "+c.Currency, 3, align.Right),
		))
	}
	if len(result) == 0 {
		result = append(result, emptyTableRow("Sin costes asignados"))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tableHeader(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func tableCell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func emptyTableRow(label string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func stateLabel(state string) string {
	switch state {
	case entity.CattleStateInventory:
		return "EN INVENTARIO"
	case entity.CattleStateRetired:
		return "DADO DE BAJA"
	case entity.CattleStateSold:
		return "VENDIDO"
	}
	return state
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

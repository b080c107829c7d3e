// Package allocation contiene la lógica pura del reparto de costes
// (servicio de dominio): factores de ponderación por animal y partición
// proporcional del importe de cada línea de factura.
package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// CattleFactor son los datos mínimos de un animal para calcular su factor:
// identidad, categoría (elegibilidad por línea), peso actual y edad en días.
type CattleFactor struct {
	CattleID      string
	CategoryID    string
	CurrentWeight decimal.Decimal
	AgeDays       int
}

// Factors calcula el factor de ponderación de cada animal según el método:
//
//	equal  -> 1.0 para todos
//	weight -> peso actual (0 si se desconoce)
//	age    -> edad en días, con mínimo 1 para no excluir recién nacidos
func Factors(method string, herd []CattleFactor) map[string]decimal.Decimal {
	factors := make(map[string]decimal.Decimal, len(herd))
	for _, c := range herd {
		switch method {
		case entity.AllocationMethodWeight:
			factors[c.CattleID] = c.CurrentWeight
		case entity.AllocationMethodAge:
			age := c.AgeDays
			if age < 1 {
				age = 1
			}
			factors[c.CattleID] = decimal.NewFromInt(int64(age))
		default:
			factors[c.CattleID] = decimal.NewFromInt(1)
		}
	}
	return factors
}

// FactorSum suma los factores del hato completo.
func FactorSum(factors map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, f := range factors {
		sum = sum.Add(f)
	}
	return sum
}

// Eligible devuelve el subconjunto de animales al que aplica una línea:
// los de la categoría etiquetada, o todos si la línea no lleva etiqueta.
func Eligible(herd []CattleFactor, lineCategoryID string) []CattleFactor {
	if lineCategoryID == "" {
		return herd
	}
	var out []CattleFactor
	for _, c := range herd {
		if c.CategoryID == lineCategoryID {
			out = append(out, c)
		}
	}
	return out
}

// Split reparte amount entre los animales elegibles en proporción a su factor,
// renormalizando sobre la suma del subconjunto (no sobre la del hato).
// Devuelve nil si la suma de factores del subconjunto no es positiva.
func Split(amount decimal.Decimal, eligible []CattleFactor, factors map[string]decimal.Decimal) map[string]decimal.Decimal {
	eligibleSum := decimal.Zero
	for _, c := range eligible {
		eligibleSum = eligibleSum.Add(factors[c.CattleID])
	}
	if !eligibleSum.IsPositive() {
		return nil
	}
	shares := make(map[string]decimal.Decimal, len(eligible))
	for _, c := range eligible {
		shares[c.CattleID] = amount.Mul(factors[c.CattleID]).Div(eligibleSum)
	}
	return shares
}

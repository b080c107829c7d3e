package allocation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/domain/allocation"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Método equal: dos animales, línea de 100.00 sin etiqueta -> 50.00 cada uno.
func TestSplit_MetodoIgualitario(t *testing.T) {
	herd := []allocation.CattleFactor{
		{CattleID: "a"},
		{CattleID: "b"},
	}
	factors := allocation.Factors(entity.AllocationMethodEqual, herd)
	eligible := allocation.Eligible(herd, "")
	shares := allocation.Split(dec("100.00"), eligible, factors)

	require.Len(t, shares, 2)
	assert.True(t, dec("50").Equal(shares["a"]), "parte de a: %s", shares["a"])
	assert.True(t, dec("50").Equal(shares["b"]), "parte de b: %s", shares["b"])
}

// Método weight: pesos 30 y 70, línea de 100.00 -> partes 30.00 y 70.00.
func TestSplit_MetodoPorPeso(t *testing.T) {
	herd := []allocation.CattleFactor{
		{CattleID: "a", CurrentWeight: dec("30")},
		{CattleID: "b", CurrentWeight: dec("70")},
	}
	factors := allocation.Factors(entity.AllocationMethodWeight, herd)
	shares := allocation.Split(dec("100.00"), herd, factors)

	require.Len(t, shares, 2)
	assert.True(t, dec("30").Equal(shares["a"]), "parte de a: %s", shares["a"])
	assert.True(t, dec("70").Equal(shares["b"]), "parte de b: %s", shares["b"])
}

// Método age: un animal con edad 0 días cuenta como 1 (piso) para no quedar
// excluido del reparto.
func TestFactors_EdadCeroCuentaComoUno(t *testing.T) {
	herd := []allocation.CattleFactor{
		{CattleID: "recien-nacido", AgeDays: 0},
		{CattleID: "adulto", AgeDays: 3},
	}
	factors := allocation.Factors(entity.AllocationMethodAge, herd)

	assert.True(t, dec("1").Equal(factors["recien-nacido"]))
	assert.True(t, dec("3").Equal(factors["adulto"]))

	shares := allocation.Split(dec("100"), herd, factors)
	require.Len(t, shares, 2)
	assert.True(t, dec("25").Equal(shares["recien-nacido"]))
	assert.True(t, dec("75").Equal(shares["adulto"]))
}

// Con todos los pesos en cero el subconjunto no tiene base válida: Split
// devuelve nil y el caso de uso debe rechazar la asignación.
func TestSplit_SinBaseValidaDevuelveNil(t *testing.T) {
	herd := []allocation.CattleFactor{
		{CattleID: "a"},
		{CattleID: "b"},
	}
	factors := allocation.Factors(entity.AllocationMethodWeight, herd)
	shares := allocation.Split(dec("100"), herd, factors)
	assert.Nil(t, shares)
}

// La renormalización es por línea: el subconjunto elegible reparte el importe
// completo aunque el hato objetivo sea mayor.
func TestSplit_RenormalizaPorSubconjuntoElegible(t *testing.T) {
	herd := []allocation.CattleFactor{
		{CattleID: "a", CategoryID: "desarrollo", CurrentWeight: dec("40")},
		{CattleID: "b", CategoryID: "desarrollo", CurrentWeight: dec("60")},
		{CattleID: "c", CategoryID: "produccion", CurrentWeight: dec("900")},
	}
	factors := allocation.Factors(entity.AllocationMethodWeight, herd)
	eligible := allocation.Eligible(herd, "desarrollo")
	require.Len(t, eligible, 2)

	shares := allocation.Split(dec("100"), eligible, factors)
	require.Len(t, shares, 2)
	assert.True(t, dec("40").Equal(shares["a"]), "parte de a: %s", shares["a"])
	assert.True(t, dec("60").Equal(shares["b"]), "parte de b: %s", shares["b"])

	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s)
	}
	assert.True(t, dec("100").Equal(total), "la suma de partes debe igualar el subtotal de la línea")
}

// Una etiqueta sin animales de esa categoría deja el subconjunto vacío.
func TestEligible_EtiquetaSinCoincidencias(t *testing.T) {
	herd := []allocation.CattleFactor{
		{CattleID: "a", CategoryID: "desarrollo"},
	}
	assert.Empty(t, allocation.Eligible(herd, "nacimiento"))
	assert.Len(t, allocation.Eligible(herd, ""), 1)
}

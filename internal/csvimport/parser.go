// Package csvimport parsea el archivo delimitado de import de stock.
//
// No es un lector RFC 4180 completo: se quita una sola capa de comillas por
// celda y no se soportan delimitadores embebidos dentro de celdas entre
// comillas. Es un parser "plano tolerante", suficiente para los archivos
// que exportan las planillas del negocio.
package csvimport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inventory-gateway/internal/models"
)

// ErrEmptyInput se retorna cuando el archivo no tiene filas de datos
var ErrEmptyInput = errors.New("import file has no data rows")

// MissingColumnsError indica que el encabezado no trae columnas requeridas
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("import header is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Parse convierte el contenido crudo del archivo en filas normalizadas.
//
// Reglas: se parte en líneas por \r\n, \n o \r y se descartan las vacías;
// el delimitador es ";" si el encabezado contiene punto y coma, "," en caso
// contrario (elección global, no por fila); las filas cortas o sin SKU se
// descartan en silencio. La cantidad se parsea a entero con 0 como default;
// el branch id queda en nil si no parsea, porque 0 es la bodega central y
// un parse fallido no puede degradar a ese id.
func Parse(content string) ([]models.ImportRow, error) {
	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, ErrEmptyInput
	}

	delimiter := ","
	if strings.Contains(lines[0], ";") {
		delimiter = ";"
	}

	skuIdx, qtyIdx, branchIdx := -1, -1, -1
	for i, cell := range strings.Split(lines[0], delimiter) {
		header := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case header == "sku":
			skuIdx = i
		case strings.Contains(header, "qty") || strings.Contains(header, "quantity"):
			qtyIdx = i
		case strings.Contains(header, "branch") || strings.Contains(header, "location"):
			branchIdx = i
		}
	}

	var missing []string
	if skuIdx < 0 {
		missing = append(missing, "sku")
	}
	if qtyIdx < 0 {
		missing = append(missing, "quantity")
	}
	if branchIdx < 0 {
		missing = append(missing, "branch")
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	maxIdx := skuIdx
	if qtyIdx > maxIdx {
		maxIdx = qtyIdx
	}
	if branchIdx > maxIdx {
		maxIdx = branchIdx
	}

	rows := []models.ImportRow{}
	for _, line := range lines[1:] {
		cells := strings.Split(line, delimiter)
		if len(cells) <= maxIdx {
			continue
		}

		sku := cleanCell(cells[skuIdx])
		if sku == "" {
			continue
		}

		qty := 0
		if parsed, err := strconv.Atoi(cleanCell(cells[qtyIdx])); err == nil {
			qty = parsed
		}

		var branchID *int
		if parsed, err := strconv.Atoi(cleanCell(cells[branchIdx])); err == nil {
			branchID = &parsed
		}

		rows = append(rows, models.ImportRow{
			SKU:      sku,
			Qty:      qty,
			BranchID: branchID,
		})
	}

	return rows, nil
}

// splitLines parte el contenido por cualquier salto de línea y descarta vacías
func splitLines(content string) []string {
	raw := strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	lines := raw[:0]
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// cleanCell quita una capa de comillas y después recorta espacios.
// El orden importa: `" 2"` debe quedar como "2" y no como " 2", si no el
// parse numérico posterior produce otro valor del que el usuario escribió.
func cleanCell(cell string) string {
	cell = strings.TrimPrefix(cell, `"`)
	cell = strings.TrimSuffix(cell, `"`)
	return strings.TrimSpace(cell)
}

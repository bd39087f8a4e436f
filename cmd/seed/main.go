// seed genera un script SQL para poblar el catálogo de un venue a partir de
// una lista de precios de proveedor en CSV (separado por ';'). Los POS
// legados suelen exportar en ISO-8859-1; el lector transcodifica a UTF-8.
//
// Columnas esperadas: sku;nombre;proveedor;costo_unitario;par;empaque
//
// Uso: go run ./cmd/seed <venue_id> [ruta/precios.csv]
// Por defecto busca precios.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/020_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type priceRow struct {
	sku      string
	name     string
	supplier string
	unitCost string
	par      string
	packSize string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <venue_id> [precios.csv]")
		os.Exit(1)
	}
	venueID := os.Args[1]
	csvPath := "precios.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Exportes de POS legados vienen en ISO-8859-1; transcodificar a UTF-8.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	suppliers := make(map[string]bool)
	var rows []priceRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue // cabecera
		}
		if len(rec) < 4 {
			continue
		}
		row := priceRow{
			sku:      strings.TrimSpace(rec[0]),
			name:     strings.TrimSpace(rec[1]),
			supplier: strings.TrimSpace(rec[2]),
			unitCost: strings.TrimSpace(strings.ReplaceAll(rec[3], ",", ".")),
		}
		if len(rec) > 4 {
			row.par = strings.TrimSpace(rec[4])
		}
		if len(rec) > 5 {
			row.packSize = strings.TrimSpace(rec[5])
		}
		if row.sku == "" || row.name == "" {
			continue
		}
		if row.supplier != "" {
			suppliers[row.supplier] = true
		}
		rows = append(rows, row)
	}

	// Proveedores ordenados para salida estable
	var supplierNames []string
	for s := range suppliers {
		supplierNames = append(supplierNames, s)
	}
	sort.Strings(supplierNames)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "020_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Catálogo inicial del venue %s\n", venueID)
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))

	out.WriteString("-- 1. Proveedores\n")
	for _, name := range supplierNames {
		fmt.Fprintf(out, "INSERT INTO suppliers (id, venue_id, name, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', now(), now())\n", escapeSQL(venueID), escapeSQL(name))
		out.WriteString("ON CONFLICT (venue_id, name) DO NOTHING;\n")
	}
	out.WriteString("\n-- 2. Productos\n")
	for _, row := range rows {
		cost := sqlNumeric(row.unitCost)
		par := sqlNumeric(row.par)
		pack := sqlNumeric(row.packSize)
		fmt.Fprintf(out, "INSERT INTO products (id, venue_id, sku, name, supplier_id, unit_cost, par, dept_par, pack_size, created_at, updated_at)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), '%s', '%s', '%s', s.id, %s, %s, '{}', %s, now(), now()\n",
			escapeSQL(venueID), escapeSQL(row.sku), escapeSQL(row.name), cost, par, pack)
		fmt.Fprintf(out, "FROM (SELECT id FROM suppliers WHERE venue_id = '%s' AND name = '%s'\n",
			escapeSQL(venueID), escapeSQL(row.supplier))
		out.WriteString("      UNION ALL SELECT NULL LIMIT 1) s\n")
		out.WriteString("ON CONFLICT (venue_id, sku) DO UPDATE SET unit_cost = EXCLUDED.unit_cost;\n")
	}

	fmt.Printf("Generado %s: %d proveedores, %d productos\n", outPath, len(supplierNames), len(rows))
}

// sqlNumeric devuelve el literal SQL del número o NULL si está vacío o no parsea.
func sqlNumeric(s string) string {
	if s == "" {
		return "NULL"
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return "NULL"
		}
	}
	return s
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// seed genera el script SQL de ubigeo del Perú (departamentos, provincias y
// distritos INEI) a partir del CSV oficial, que viene codificado en ISO-8859-1.
//
// Uso: go run ./cmd/seed [ruta/ubigeo.csv]
// Por defecto busca ubigeo.csv en el directorio actual.
// Formato esperado por línea: codigo;departamento;provincia;distrito
// Escribe: internal/infrastructure/postgres/migrations/008_seed_ubigeo.sql
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type distrito struct {
	codigo       string // ubigeo de 6 dígitos
	departamento string
	provincia    string
	nombre       string
}

func main() {
	csvPath := "ubigeo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El CSV del INEI viene en ISO-8859-1 (tildes y eñes).
	sc := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))

	deptMap := make(map[string]string) // código de 2 dígitos → nombre
	var distritos []distrito
	for sc.Scan() {
		linea := strings.TrimSpace(sc.Text())
		if linea == "" || strings.HasPrefix(linea, "#") {
			continue
		}
		campos := strings.Split(linea, ";")
		if len(campos) < 4 || len(campos[0]) != 6 {
			continue
		}
		d := distrito{
			codigo:       strings.TrimSpace(campos[0]),
			departamento: strings.TrimSpace(campos[1]),
			provincia:    strings.TrimSpace(campos[2]),
			nombre:       strings.TrimSpace(campos[3]),
		}
		deptMap[d.codigo[:2]] = d.departamento
		distritos = append(distritos, d)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var deptCodes []string
	for c := range deptMap {
		deptCodes = append(deptCodes, c)
	}
	sort.Strings(deptCodes)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "008_seed_ubigeo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Ubigeo Perú (código INEI)\n")
	out.WriteString("-- Generado desde ubigeo.csv\n\n")

	out.WriteString("-- 1. Departamentos\n")
	out.WriteString("INSERT INTO ubigeo_departamentos (codigo, nombre) VALUES\n")
	for i, c := range deptCodes {
		nombre := escapeSQL(deptMap[c])
		if i < len(deptCodes)-1 {
			fmt.Fprintf(out, "  ('%s', '%s'),\n", c, nombre)
		} else {
			fmt.Fprintf(out, "  ('%s', '%s')\n", c, nombre)
		}
	}
	out.WriteString("ON CONFLICT (codigo) DO UPDATE SET nombre = EXCLUDED.nombre;\n\n")

	out.WriteString("-- 2. Distritos (ubigeo completo de 6 dígitos)\n")
	for _, d := range distritos {
		fmt.Fprintf(out, "INSERT INTO ubigeo_distritos (codigo, departamento, provincia, nombre)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s')\n",
			d.codigo, escapeSQL(d.departamento), escapeSQL(d.provincia), escapeSQL(d.nombre))
		out.WriteString("ON CONFLICT (codigo) DO UPDATE SET nombre = EXCLUDED.nombre;\n")
	}

	fmt.Printf("Generado %s: %d departamentos, %d distritos\n", outPath, len(deptCodes), len(distritos))
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

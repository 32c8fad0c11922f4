package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sisoputnfrba/simulador-memoria/disco"
	"github.com/sisoputnfrba/simulador-memoria/particiones"
	"github.com/sisoputnfrba/simulador-memoria/reemplazo"
)

// Renderizado en texto de las pantallas del simulador

func nuevaTabla(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func imprimirAsignaciones(w io.Writer, e particiones.Estrategia, asignaciones []particiones.Asignacion) error {
	fmt.Fprintf(w, "Estrategia: %s\n%s\n\n", e, e.Detalle())

	tw := nuevaTabla(w)
	fmt.Fprintln(tw, "PROCESO\tTAMAÑO\tPARTICIÓN\tDETALLES")
	for _, a := range asignaciones {
		fmt.Fprintf(tw, "%s\t%sGB\t%s\t%s\n", a.Proceso.ID, formatearTamanio(a.Proceso.Tamanio), a.Rotulo(), a.Detalles)
	}
	return tw.Flush()
}

func imprimirLineaTiempo(w io.Writer, res particiones.Resultado) error {
	fmt.Fprintf(w, "Estrategia: %s\n\n", res.Estrategia)

	tw := nuevaTabla(w)
	for _, tick := range res.Linea.Ticks() {
		celdas := make([]string, 0, len(res.Linea[tick]))
		for _, p := range res.Linea[tick] {
			estado := "libre"
			if !p.Disponible && p.OcupadaHasta != nil {
				estado = "hasta " + strconv.Itoa(*p.OcupadaHasta)
			}
			celdas = append(celdas, fmt.Sprintf("%s(%sGB) %s", p.ID, formatearTamanio(p.Tamanio), estado))
		}
		fmt.Fprintf(tw, "t=%d\t%s\n", tick, strings.Join(celdas, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(res.Eventos) > 0 {
		fmt.Fprintln(w)
	}
	for _, ev := range res.Eventos {
		if ev.Tipo == particiones.Admitido {
			fmt.Fprintf(w, "t=%d %s -> %s hasta t=%d\n", ev.Tick, ev.ProcesoID, ev.ParticionID, ev.Hasta)
		} else {
			fmt.Fprintf(w, "t=%d %s descartado: ninguna partición disponible\n", ev.Tick, ev.ProcesoID)
		}
	}
	return nil
}

func imprimirMemoria(w io.Writer, m reemplazo.Memoria) error {
	tw := nuevaTabla(w)
	fmt.Fprintln(tw, "PÁGINA\tREFERENCIADA")
	for _, p := range m.Paginas {
		r := "No"
		if p.Referenciada {
			r = "Sí"
		}
		fmt.Fprintf(tw, "%s\t%s\n", p.ID, r)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(m.Historial) > 0 {
		fmt.Fprintln(w, "\nHistorial:")
		for _, linea := range m.Historial {
			fmt.Fprintf(w, "  %s\n", linea)
		}
	}
	return nil
}

func imprimirRecorrido(w io.Writer, alg disco.Algoritmo, r disco.Recorrido) error {
	orden := make([]string, 0, len(r.Orden))
	for _, c := range r.Orden {
		orden = append(orden, strconv.Itoa(c))
	}
	trayecto := make([]string, 0, len(r.Trayecto))
	for _, c := range r.Trayecto {
		trayecto = append(trayecto, strconv.Itoa(c))
	}

	tw := nuevaTabla(w)
	fmt.Fprintf(tw, "Algoritmo:\t%s\n", alg)
	fmt.Fprintf(tw, "Orden de atención:\t%s\n", strings.Join(orden, ", "))
	fmt.Fprintf(tw, "Trayecto:\t%s\n", strings.Join(trayecto, " -> "))
	fmt.Fprintf(tw, "Movimiento total:\t%d cilindros\n", r.Movimiento)
	return tw.Flush()
}

func formatearTamanio(tamanio float64) string {
	return strconv.FormatFloat(tamanio, 'f', -1, 64)
}

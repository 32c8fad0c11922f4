package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/sisoputnfrba/simulador-memoria/disco"
	"github.com/sisoputnfrba/simulador-memoria/entrada"
	"github.com/sisoputnfrba/simulador-memoria/paginacion"
	"github.com/sisoputnfrba/simulador-memoria/particiones"
	"github.com/sisoputnfrba/simulador-memoria/reemplazo"
	"github.com/sisoputnfrba/simulador-memoria/utils"
)

func main() {
	if err := ejecutar(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", utils.MensajeUsuario(err))
		if !utils.EsSinCandidato(err) && !utils.EsColeccionVacia(err) {
			os.Exit(1)
		}
	}
}

// ejecutar interpreta la línea de comandos y corre la pantalla pedida.
// Los fallos de página y la memoria vacía se muestran como parte de la salida, no como error.
func ejecutar(args []string, salida io.Writer) error {
	app := kingpin.New("simulador", "Simulador de particiones, paginación, reemplazo de páginas y disco.")
	logLevel := app.Flag("log-level", "Nivel de log (debug, info, warn, error).").Default("warn").String()

	cmdServidor := app.Command("servidor", "Atiende mensajes HTTP.")
	rutaConfig := cmdServidor.Arg("config", "Archivo de configuración YAML o JSON.").Required().String()

	cmdParticiones := app.Command("particiones", "Asigna procesos a particiones sin liberarlas.")
	partEstrategia := cmdParticiones.Flag("estrategia", "First-Fit, Best-Fit o Worst-Fit.").Short('e').Default(string(particiones.FirstFit)).String()
	partParticiones := cmdParticiones.Flag("particion", "Partición ID,tamaño (repetible).").Short('p').Strings()
	partProcesos := cmdParticiones.Flag("proceso", "Proceso ID,tamaño (repetible).").Short('r').Strings()

	cmdLinea := app.Command("linea-tiempo", "Simula los ticks 0..10 liberando y asignando particiones.")
	lineaEstrategia := cmdLinea.Flag("estrategia", "First-Fit, Best-Fit o Worst-Fit.").Short('e').Default(string(particiones.FirstFit)).String()
	lineaParticiones := cmdLinea.Flag("particion", "Partición ID,tamaño (repetible).").Short('p').Strings()
	lineaProcesos := cmdLinea.Flag("proceso", "Proceso ID,tamaño,llegada,duración (repetible).").Short('r').Strings()
	lineaVolcado := cmdLinea.Flag("volcar", "Directorio donde volcar la corrida en YAML.").String()
	lineaLeer := cmdLinea.Flag("leer", "Muestra una corrida volcada en vez de simular.").ExistingFile()

	cmdPaginacion := app.Command("paginacion", "Traduce una dirección virtual a física.")
	pagDireccion := cmdPaginacion.Arg("direccion", "Dirección virtual.").Required().String()
	pagTabla := cmdPaginacion.Flag("tabla", "Tabla página:marco, por ejemplo 0:2,1:5.").String()
	pagTamanio := cmdPaginacion.Flag("tam-pagina", "Tamaño de página en bytes.").Default("4096").Int()

	cmdReemplazo := app.Command("reemplazo", "Carga páginas y aplica un algoritmo de reemplazo.")
	remAlgoritmo := cmdReemplazo.Flag("algoritmo", "FIFO, LRU, NRU o Segunda Chance.").Short('a').Default(string(reemplazo.FIFO)).String()
	remPaginas := cmdReemplazo.Flag("pagina", "Página cargada con el bit R encendido (repetible).").Short('p').Strings()
	remSinReferencia := cmdReemplazo.Flag("sin-referencia", "Página cargada con el bit R apagado (repetible).").Strings()
	remReferenciar := cmdReemplazo.Flag("referenciar", "Página a referenciar antes de reemplazar (repetible).").Strings()
	remLimpiar := cmdReemplazo.Flag("limpiar", "Apaga todos los bits R antes de reemplazar.").Bool()
	remVeces := cmdReemplazo.Flag("veces", "Cantidad de reemplazos.").Default("1").Int()

	cmdDisco := app.Command("disco", "Planifica la cola de pedidos del disco.")
	discoAlgoritmo := cmdDisco.Flag("algoritmo", "FCFS, SSTF, SCAN, C-SCAN, LOOK o C-LOOK.").Short('a').Default(string(disco.FCFS)).String()
	discoCabeza := cmdDisco.Flag("cabeza", "Cilindro inicial.").Required().Int()
	discoPedidos := cmdDisco.Flag("pedidos", "Pedidos separados por comas.").Required().String()
	discoCilindros := cmdDisco.Flag("cilindros", "Cantidad de cilindros.").Default("200").Int()
	discoDescendente := cmdDisco.Flag("descendente", "El brazo arranca hacia los cilindros menores.").Bool()

	comando, err := app.Parse(args)
	if err != nil {
		return utils.EntradaInvalida("%v", err)
	}

	utils.InicializarLogger(*logLevel, nombreModulo)

	switch comando {
	case cmdServidor.FullCommand():
		ctx, cancel := contextoConSenales()
		defer cancel()
		return ejecutarServidor(ctx, *rutaConfig)

	case cmdParticiones.FullCommand():
		return comandoParticiones(salida, *partEstrategia, *partParticiones, *partProcesos)

	case cmdLinea.FullCommand():
		if *lineaLeer != "" {
			return comandoRepetirVolcado(salida, *lineaLeer)
		}
		return comandoLineaTiempo(salida, *lineaEstrategia, *lineaParticiones, *lineaProcesos, *lineaVolcado)

	case cmdPaginacion.FullCommand():
		return comandoPaginacion(salida, *pagDireccion, *pagTabla, *pagTamanio)

	case cmdReemplazo.FullCommand():
		return comandoReemplazo(salida, opcionesReemplazo{
			algoritmo:     *remAlgoritmo,
			paginas:       *remPaginas,
			sinReferencia: *remSinReferencia,
			referenciar:   *remReferenciar,
			limpiar:       *remLimpiar,
			veces:         *remVeces,
		})

	case cmdDisco.FullCommand():
		return comandoDisco(salida, *discoAlgoritmo, *discoCabeza, *discoPedidos, *discoCilindros, !*discoDescendente)
	}

	return utils.EntradaInvalida("comando desconocido %q", comando)
}

func leerParticionesYProcesos(textosParticiones, textosProcesos []string) ([]particiones.Particion, []particiones.Proceso, error) {
	lista := particiones.ParticionesPorDefecto()
	if len(textosParticiones) > 0 {
		var err error
		if lista, err = entrada.ParsearParticiones(textosParticiones); err != nil {
			return nil, nil, err
		}
	}
	procesos, err := entrada.ParsearProcesos(textosProcesos)
	if err != nil {
		return nil, nil, err
	}
	return lista, procesos, nil
}

func comandoParticiones(w io.Writer, estrategia string, textosParticiones, textosProcesos []string) error {
	e, err := particiones.ParsearEstrategia(estrategia)
	if err != nil {
		return err
	}
	lista, procesos, err := leerParticionesYProcesos(textosParticiones, textosProcesos)
	if err != nil {
		return err
	}
	asignaciones, err := particiones.Asignar(lista, procesos, e)
	if err != nil {
		return err
	}
	return imprimirAsignaciones(w, e, asignaciones)
}

func comandoLineaTiempo(w io.Writer, estrategia string, textosParticiones, textosProcesos []string, dirVolcado string) error {
	e, err := particiones.ParsearEstrategia(estrategia)
	if err != nil {
		return err
	}
	lista, procesos, err := leerParticionesYProcesos(textosParticiones, textosProcesos)
	if err != nil {
		return err
	}
	res, err := particiones.SimularDetallado(lista, procesos, e)
	if err != nil {
		return err
	}
	if err := imprimirLineaTiempo(w, res); err != nil {
		return err
	}

	if dirVolcado != "" {
		ruta, err := crearVolcado(dirVolcado, res, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nVolcado en %s\n", ruta)
	}
	return nil
}

// comandoRepetirVolcado muestra una corrida guardada con --volcar
func comandoRepetirVolcado(w io.Writer, ruta string) error {
	res, err := leerVolcado(ruta)
	if err != nil {
		return utils.EntradaInvalida("%v", err)
	}
	if len(res.Linea) == 0 {
		return utils.EntradaInvalida("%s no es un volcado de línea de tiempo", ruta)
	}
	return imprimirLineaTiempo(w, res)
}

func comandoPaginacion(w io.Writer, textoDireccion, textoTabla string, tamPagina int) error {
	direccion, err := entrada.ParsearEntero(textoDireccion, entrada.AlertaDireccion)
	if err != nil {
		return err
	}
	tabla := paginacion.TablaPorDefecto()
	if textoTabla != "" {
		crudo, err := entrada.ParsearTabla(textoTabla)
		if err != nil {
			return err
		}
		tabla = paginacion.TablaPaginas(crudo)
	}

	t, err := paginacion.TraducirConTamanio(direccion, tabla, tamPagina)
	if paginacion.EsFalloPagina(err) {
		fmt.Fprintf(w, "Dirección virtual: %d => Página %d no encontrada\n", t.DireccionVirtual, t.Pagina)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, t.String())
	return nil
}

type opcionesReemplazo struct {
	algoritmo     string
	paginas       []string
	sinReferencia []string
	referenciar   []string
	limpiar       bool
	veces         int
}

func comandoReemplazo(w io.Writer, op opcionesReemplazo) error {
	alg, err := reemplazo.ParsearAlgoritmo(op.algoritmo)
	if err != nil {
		return err
	}
	if op.veces < 0 {
		return utils.EntradaInvalida("la cantidad de reemplazos no puede ser negativa: %d", op.veces)
	}

	var m reemplazo.Memoria
	for _, id := range op.paginas {
		if m, err = m.AgregarPagina(id); err != nil {
			return err
		}
	}
	for _, id := range op.sinReferencia {
		if m, err = m.AgregarPaginaSinReferencia(id); err != nil {
			return err
		}
	}
	for _, id := range op.referenciar {
		if m, err = m.Referenciar(id); err != nil {
			return err
		}
	}
	if op.limpiar {
		m = m.LimpiarReferencias()
	}

	for i := 0; i < op.veces; i++ {
		var r reemplazo.Reemplazo
		m, r, err = m.Reemplazar(alg)
		if utils.EsColeccionVacia(err) {
			fmt.Fprintln(w, "No hay páginas en memoria para reemplazar")
			break
		}
		if err != nil {
			return err
		}
		utils.InfoLog.WithField("entrada", r.Entrada).Debug("Reemplazo por línea de comandos")
	}

	fmt.Fprintf(w, "Algoritmo: %s\n\n", alg)
	return imprimirMemoria(w, m)
}

func comandoDisco(w io.Writer, algoritmo string, cabeza int, textoPedidos string, cilindros int, haciaArriba bool) error {
	alg, err := disco.ParsearAlgoritmo(algoritmo)
	if err != nil {
		return err
	}
	pedidos, err := entrada.ParsearEnteros(textoPedidos)
	if err != nil {
		return err
	}
	r, err := disco.Planificar(disco.Solicitud{
		Cabeza:      cabeza,
		Pedidos:     pedidos,
		Algoritmo:   alg,
		Cilindros:   cilindros,
		HaciaArriba: haciaArriba,
	})
	if err != nil {
		return err
	}
	return imprimirRecorrido(w, alg, r)
}

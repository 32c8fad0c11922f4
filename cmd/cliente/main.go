package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v2"

	"github.com/sisoputnfrba/simulador-memoria/entrada"
	"github.com/sisoputnfrba/simulador-memoria/utils"
)

const nombreModulo = "Cliente"

func main() {
	if err := ejecutar(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", utils.MensajeUsuario(err))
		if !utils.EsSinCandidato(err) && !utils.EsColeccionVacia(err) {
			os.Exit(1)
		}
	}
}

// respuesta es la forma común de lo que devuelve el simulador
type respuesta map[string]interface{}

// errorRemoto convierte una respuesta con error en un error de la clase que corresponda
func (r respuesta) errorRemoto() error {
	msg, ok := r["error"].(string)
	if !ok {
		return nil
	}
	switch r["clase"] {
	case "entrada_invalida":
		return utils.EntradaInvalida("%s", msg)
	case "sin_candidato":
		return errors.Wrap(utils.ErrSinCandidato, msg)
	case "coleccion_vacia":
		return errors.Wrap(utils.ErrColeccionVacia, msg)
	}
	return errors.New(msg)
}

func ejecutar(args []string, salida io.Writer) error {
	app := kingpin.New("cliente", "Cliente HTTP del simulador.")
	servidor := app.Flag("servidor", "URL base del simulador.").Default("http://127.0.0.1:8002").String()
	timeout := app.Flag("timeout", "Tiempo máximo por pedido.").Default("5s").Duration()
	logLevel := app.Flag("log-level", "Nivel de log.").Default("warn").String()

	cmdSalud := app.Command("salud", "Verifica que el simulador responda.")

	cmdTraducir := app.Command("traducir", "Traduce una dirección virtual.")
	direccion := cmdTraducir.Arg("direccion", "Dirección virtual.").Required().String()
	tabla := cmdTraducir.Flag("tabla", "Tabla página:marco.").String()

	cmdLinea := app.Command("linea-tiempo", "Pide la línea de tiempo de particiones.")
	estrategia := cmdLinea.Flag("estrategia", "First-Fit, Best-Fit o Worst-Fit.").Short('e').Default("First-Fit").String()
	textosParticiones := cmdLinea.Flag("particion", "Partición ID,tamaño (repetible).").Short('p').Strings()
	textosProcesos := cmdLinea.Flag("proceso", "Proceso ID,tamaño,llegada,duración (repetible).").Short('r').Strings()
	volcar := cmdLinea.Flag("volcar", "Pide al simulador que vuelque la corrida.").Bool()

	cmdDisco := app.Command("disco", "Planifica pedidos de disco.")
	algoritmo := cmdDisco.Flag("algoritmo", "FCFS, SSTF, SCAN, C-SCAN, LOOK o C-LOOK.").Short('a').Default("FCFS").String()
	cabeza := cmdDisco.Flag("cabeza", "Cilindro inicial.").Required().Int()
	textoPedidos := cmdDisco.Flag("pedidos", "Pedidos separados por comas.").Required().String()
	descendente := cmdDisco.Flag("descendente", "El brazo arranca hacia los cilindros menores.").Bool()

	comando, err := app.Parse(args)
	if err != nil {
		return utils.EntradaInvalida("%v", err)
	}

	utils.InicializarLogger(*logLevel, nombreModulo)

	cliente := utils.NewHTTPClientURL(*servidor, nombreModulo)
	defer cliente.CerrarConexiones()
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var tipo int
	var datos interface{}

	switch comando {
	case cmdSalud.FullCommand():
		estado, err := cliente.VerificarConexion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(salida, "%v: %v (%v mensajes atendidos)\n", estado["module"], estado["status"], estado["atendidos"])
		return nil

	case cmdTraducir.FullCommand():
		dir, err := entrada.ParsearEntero(*direccion, entrada.AlertaDireccion)
		if err != nil {
			return err
		}
		pedido := map[string]interface{}{"direccion": dir}
		if *tabla != "" {
			t, err := entrada.ParsearTabla(*tabla)
			if err != nil {
				return err
			}
			pedido["tabla"] = t
		}
		tipo, datos = utils.MensajeTraducir, pedido

	case cmdLinea.FullCommand():
		pedido := map[string]interface{}{"estrategia": *estrategia, "volcar": *volcar}
		if len(*textosParticiones) > 0 {
			lista, err := entrada.ParsearParticiones(*textosParticiones)
			if err != nil {
				return err
			}
			pedido["particiones"] = lista
		}
		procesos, err := entrada.ParsearProcesos(*textosProcesos)
		if err != nil {
			return err
		}
		pedido["procesos"] = procesos
		tipo, datos = utils.MensajeLineaTiempo, pedido

	case cmdDisco.FullCommand():
		pedidos, err := entrada.ParsearEnteros(*textoPedidos)
		if err != nil {
			return err
		}
		tipo, datos = utils.MensajePlanificarDisco, map[string]interface{}{
			"algoritmo":    *algoritmo,
			"cabeza":       *cabeza,
			"pedidos":      pedidos,
			"hacia_arriba": !*descendente,
		}

	default:
		return utils.EntradaInvalida("comando desconocido %q", comando)
	}

	return enviar(ctx, cliente, salida, tipo, datos)
}

// enviar manda el mensaje y muestra la respuesta en YAML
func enviar(ctx context.Context, cliente *utils.HTTPClient, salida io.Writer, tipo int, datos interface{}) error {
	inicio := time.Now()
	var resp respuesta
	if err := cliente.EnviarHTTPMensaje(ctx, tipo, "", datos, &resp); err != nil {
		return err
	}
	utils.InfoLog.WithField("tipo", tipo).WithField("demora", time.Since(inicio)).Debug("Respuesta recibida")

	if err := resp.errorRemoto(); err != nil {
		return err
	}
	delete(resp, "status")

	contenido, err := yaml.Marshal(map[string]interface{}(resp))
	if err != nil {
		return errors.Wrap(err, "error al mostrar la respuesta")
	}
	_, err = salida.Write(contenido)
	return err
}

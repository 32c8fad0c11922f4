package particiones

// SeleccionarParticion elige, según la estrategia, una partición disponible
// con capacidad suficiente. Los empates se resuelven por orden original.
func SeleccionarParticion(disponibles []Particion, tamanioRequerido float64, e Estrategia) (Particion, bool) {
	i := indiceCandidato(disponibles, tamanioRequerido, e)
	if i < 0 {
		return Particion{}, false
	}
	return disponibles[i].copia(), true
}

// indiceCandidato devuelve la posición elegida o -1
func indiceCandidato(particiones []Particion, tamanio float64, e Estrategia) int {
	elegida := -1
	for i, p := range particiones {
		if !p.Disponible || !(p.Tamanio >= tamanio) {
			continue
		}
		if elegida < 0 {
			elegida = i
			if e == FirstFit {
				return elegida
			}
			continue
		}
		// Comparación estricta: ante igual tamaño gana la primera encontrada
		switch e {
		case BestFit:
			if p.Tamanio < particiones[elegida].Tamanio {
				elegida = i
			}
		case WorstFit:
			if p.Tamanio > particiones[elegida].Tamanio {
				elegida = i
			}
		}
	}
	return elegida
}

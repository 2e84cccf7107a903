// Package facturacion implementa la emisión de boletas electrónicas a través
// del proveedor de facturación externo: validar → emitir → generar PDF →
// descargar y archivar. El proveedor es el sistema de registro del
// comprobante; aquí solo se orquesta el flujo.
package facturacion

import (
	"context"
	"fmt"
	"sync"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

// EstadoEmision estado del flujo de emisión de UNA boleta.
type EstadoEmision string

const (
	EstadoDraft         EstadoEmision = "DRAFT"
	EstadoSubmitting    EstadoEmision = "SUBMITTING"
	EstadoIssued        EstadoEmision = "ISSUED"
	EstadoGeneratingPDF EstadoEmision = "GENERATING_PDF"
	EstadoReady         EstadoEmision = "READY"
	EstadoDownloading   EstadoEmision = "DOWNLOADING"
)

// emision es una instancia de flujo: la boleta emitida en vuelo y su estado.
// Propiedad exclusiva del orquestador durante el flujo; se descarta al
// iniciar una emisión nueva.
type emision struct {
	estado  EstadoEmision
	boleta  BoletaEmitida
	socioID string // requerido para archivar el PDF
}

// Config parámetros del orquestador (identidad ante el proveedor y serie por defecto).
type Config struct {
	Serie     string
	CompanyID int
	BranchID  int
}

// Orquestador dirige el flujo de emisión multi-paso.
//
// Semántica de fallos:
//   - Validación y envío son recuperables por el usuario (corregir y reenviar).
//   - El fallo al generar el PDF se reporta pero NO revierte la emisión: el
//     comprobante ya quedó legalmente emitido en el proveedor.
//   - La descarga/archivado es reintentable volviendo a invocarla.
//   - Ningún paso se reintenta automáticamente.
type Orquestador struct {
	api      BoletaAPI
	archivos ArchivoStore
	cfg      Config
	log      *logger.Logger

	mu        sync.Mutex
	emisiones map[int64]*emision // por ID de boleta del proveedor
}

// NewOrquestador construye el orquestador.
func NewOrquestador(api BoletaAPI, archivos ArchivoStore, cfg Config, log *logger.Logger) *Orquestador {
	return &Orquestador{
		api:       api,
		archivos:  archivos,
		cfg:       cfg,
		log:       log.Modulo("facturacion"),
		emisiones: make(map[int64]*emision),
	}
}

// Emitir ejecuta los pasos 1–3 del flujo:
//
//  1. Validación local campo a campo, antes de cualquier red.
//  2. Envío al proveedor. En rechazo retorna *domain.IssuanceError con el
//     mensaje del proveedor; no queda boleta en vuelo y el flujo está listo
//     para un reenvío corregido.
//  3. Solicitud de generación del PDF (A4). Su fallo no es fatal: se loguea y
//     se refleja en PDFSolicitado=false.
func (o *Orquestador) Emitir(ctx context.Context, usuarioID string, in dto.EmitirBoletaRequest) (*dto.BoletaEmitidaResponse, error) {
	// Paso 1: validar (estado conceptual DRAFT → SUBMITTING solo si pasa)
	if verr := validarSolicitud(&in); verr != nil {
		return nil, verr
	}

	payload := o.construirPayload(usuarioID, &in)

	// Paso 2: enviar
	boleta, err := o.api.Emitir(ctx, payload)
	if err != nil {
		// Sin reintento automático: el riesgo de re-emisión es del usuario.
		o.log.Warn().Err(err).Str("serie", payload.Serie).Msg("emisión rechazada o fallida")
		return nil, err
	}

	em := &emision{estado: EstadoIssued, boleta: *boleta, socioID: in.Cliente.SocioID}
	o.mu.Lock()
	o.emisiones[boleta.ID] = em
	o.mu.Unlock()

	o.log.Info().
		Int64("boleta_id", boleta.ID).
		Str("numero", boleta.NumeroCompleto).
		Msg("boleta emitida")

	// Paso 3: generación de PDF, no transaccional con la emisión
	pdfSolicitado := true
	o.transicion(em, EstadoGeneratingPDF)
	if err := o.api.GenerarPDF(ctx, boleta.ID, FormatoA4); err != nil {
		pdfSolicitado = false
		o.log.Error().Err(err).Int64("boleta_id", boleta.ID).Msg("generación de PDF fallida")
	}
	o.transicion(em, EstadoReady)

	return &dto.BoletaEmitidaResponse{
		ID:             boleta.ID,
		NumeroCompleto: boleta.NumeroCompleto,
		PDFSolicitado:  pdfSolicitado,
	}, nil
}

// DescargarYArchivar ejecuta el paso 4: baja el PDF del proveedor, sube una
// copia al object storage bajo {socioID}/{numeroCompleto}.pdf y devuelve el
// binario con su nombre para la descarga del usuario.
//
// Precondición: el socio del receptor debe ser conocido (vino de la búsqueda
// por documento); sin él se falla rápido en vez de archivar sin clave.
// Reintentable: un fallo deja el flujo en READY para volver a invocar.
func (o *Orquestador) DescargarYArchivar(ctx context.Context, boletaID int64, formato FormatoPDF) ([]byte, string, error) {
	o.mu.Lock()
	em, ok := o.emisiones[boletaID]
	o.mu.Unlock()
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	if em.socioID == "" {
		return nil, "", fmt.Errorf("%w: la boleta no tiene socio asociado, búsquelo por documento antes de emitir", domain.ErrInvalidInput)
	}
	if formato == "" {
		formato = FormatoA4
	}

	o.transicion(em, EstadoDownloading)
	contenido, err := o.api.DescargarPDF(ctx, boletaID, formato)
	if err != nil {
		o.transicion(em, EstadoReady)
		return nil, "", fmt.Errorf("descargar PDF de boleta %d: %w", boletaID, err)
	}

	nombre := em.boleta.NumeroCompleto + ".pdf"
	ruta := em.socioID + "/" + nombre
	if err := o.archivos.Upload(ctx, ruta, contenido, "application/pdf", true); err != nil {
		o.transicion(em, EstadoReady)
		return nil, "", fmt.Errorf("archivar PDF en %s: %w", ruta, err)
	}

	o.transicion(em, EstadoReady)
	o.log.Info().Int64("boleta_id", boletaID).Str("ruta", ruta).Msg("PDF archivado")
	return contenido, nombre, nil
}

// Estado devuelve el estado del flujo de la boleta, o "" si no está en vuelo.
func (o *Orquestador) Estado(boletaID int64) EstadoEmision {
	o.mu.Lock()
	defer o.mu.Unlock()
	if em, ok := o.emisiones[boletaID]; ok {
		return em.estado
	}
	return ""
}

// Descartar olvida la boleta en vuelo (el usuario inició otra emisión o salió
// del área). El comprobante sigue existiendo en el proveedor.
func (o *Orquestador) Descartar(boletaID int64) {
	o.mu.Lock()
	delete(o.emisiones, boletaID)
	o.mu.Unlock()
}

// construirPayload arma el payload del proveedor: completa serie e identidad
// configuradas y convierte cada precio con IGV a valor base sin IGV.
func (o *Orquestador) construirPayload(usuarioID string, in *dto.EmitirBoletaRequest) *dto.ProveedorBoletaJSON {
	serie := in.Serie
	if serie == "" {
		serie = o.cfg.Serie
	}
	detalles := make([]dto.ProveedorDetalleJSON, 0, len(in.Items))
	for _, item := range in.Items {
		detalles = append(detalles, dto.ProveedorDetalleJSON{
			Codigo:              item.Codigo,
			Descripcion:         item.Descripcion,
			Unidad:              item.Unidad,
			Cantidad:            item.Cantidad,
			MtoValorUnitario:    BaseSinIGV(item.PrecioUnitario, item.PorcentajeIGV),
			PorcentajeIGV:       item.PorcentajeIGV,
			TipAfeIGV:           item.TipAfeIGV,
			CodigoProductoSunat: item.CodigoProductoSunat,
		})
	}
	return &dto.ProveedorBoletaJSON{
		Serie:           serie,
		FechaEmision:    in.FechaEmision,
		Moneda:          in.Moneda,
		TipoOperacion:   in.TipoOperacion,
		MetodoEnvio:     in.MetodoEnvio,
		FormaPagoTipo:   in.FormaPagoTipo,
		UsuarioCreacion: usuarioID,
		Cliente: dto.ProveedorClienteJSON{
			TipoDocumento:   in.Cliente.TipoDocumento,
			NumeroDocumento: in.Cliente.NumeroDocumento,
			RazonSocial:     in.Cliente.RazonSocial,
			NombreComercial: in.Cliente.NombreComercial,
			Direccion:       in.Cliente.Direccion,
			Distrito:        in.Cliente.Distrito,
			Provincia:       in.Cliente.Provincia,
			Departamento:    in.Cliente.Departamento,
			Telefono:        in.Cliente.Telefono,
			Email:           in.Cliente.Email,
		},
		Detalles:  detalles,
		CompanyID: o.cfg.CompanyID,
		BranchID:  o.cfg.BranchID,
	}
}

func (o *Orquestador) transicion(em *emision, a EstadoEmision) {
	o.mu.Lock()
	em.estado = a
	o.mu.Unlock()
}

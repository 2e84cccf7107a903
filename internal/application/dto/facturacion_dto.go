package dto

import "github.com/shopspring/decimal"

// ClienteBoleta receptor del comprobante: identidad tributaria del socio.
// Se llena por prelleno desde la búsqueda por documento; nunca se persiste
// desde aquí (el padrón es el sistema de registro).
type ClienteBoleta struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	RazonSocial     string `json:"razon_social"`
	NombreComercial string `json:"nombre_comercial,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	Distrito        string `json:"distrito,omitempty"`
	Provincia       string `json:"provincia,omitempty"`
	Departamento    string `json:"departamento,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Email           string `json:"email,omitempty"`
	// SocioID identificador interno del socio; requerido para archivar el PDF.
	SocioID string `json:"socio_id,omitempty"`
}

// ItemBoleta línea de la boleta tal como la ingresa el usuario.
// PrecioUnitario es el valor CON IGV incluido; la conversión a valor base sin
// IGV ocurre antes del envío al proveedor.
type ItemBoleta struct {
	Codigo              string          `json:"codigo"`
	Descripcion         string          `json:"descripcion"`
	Unidad              string          `json:"unidad"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	PrecioUnitario      decimal.Decimal `json:"precio_unitario"` // con IGV
	PorcentajeIGV       decimal.Decimal `json:"porcentaje_igv"`
	TipAfeIGV           string          `json:"tip_afe_igv"`
	CodigoProductoSunat string          `json:"codigo_producto_sunat"`
}

// EmitirBoletaRequest body para POST /api/comprobantes.
type EmitirBoletaRequest struct {
	Serie         string        `json:"serie,omitempty"` // por defecto la serie configurada
	FechaEmision  string        `json:"fecha_emision"`   // ISO yyyy-mm-dd
	Moneda        string        `json:"moneda"`
	TipoOperacion string        `json:"tipo_operacion"`
	MetodoEnvio   string        `json:"metodo_envio"`
	FormaPagoTipo string        `json:"forma_pago_tipo"`
	Cliente       ClienteBoleta `json:"client"`
	Items         []ItemBoleta  `json:"detalles"`
}

// BoletaEmitidaResponse respuesta de la emisión.
type BoletaEmitidaResponse struct {
	ID             int64  `json:"id"`
	NumeroCompleto string `json:"numero_completo"` // serie-correlativo, ej. B001-00042
	PDFSolicitado  bool   `json:"pdf_solicitado"`  // false si el paso de generación de PDF falló
}

// ── Formato de cable hacia el proveedor de facturación ────────────────────────

// ProveedorClienteJSON cliente en el payload del proveedor.
type ProveedorClienteJSON struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	RazonSocial     string `json:"razon_social"`
	NombreComercial string `json:"nombre_comercial,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	Distrito        string `json:"distrito,omitempty"`
	Provincia       string `json:"provincia,omitempty"`
	Departamento    string `json:"departamento,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Email           string `json:"email,omitempty"`
}

// ProveedorDetalleJSON línea en el payload del proveedor: el valor unitario ya
// va SIN IGV (mto_valor_unitario), convertido y redondeado a 2 decimales.
type ProveedorDetalleJSON struct {
	Codigo              string          `json:"codigo"`
	Descripcion         string          `json:"descripcion"`
	Unidad              string          `json:"unidad"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	MtoValorUnitario    decimal.Decimal `json:"mto_valor_unitario"`
	PorcentajeIGV       decimal.Decimal `json:"porcentaje_igv"`
	TipAfeIGV           string          `json:"tip_afe_igv"`
	CodigoProductoSunat string          `json:"codigo_producto_sunat"`
}

// ProveedorBoletaJSON body de POST {base}/boletas.
type ProveedorBoletaJSON struct {
	Serie           string                 `json:"serie"`
	FechaEmision    string                 `json:"fecha_emision"`
	Moneda          string                 `json:"moneda"`
	TipoOperacion   string                 `json:"tipo_operacion"`
	MetodoEnvio     string                 `json:"metodo_envio"`
	FormaPagoTipo   string                 `json:"forma_pago_tipo"`
	UsuarioCreacion string                 `json:"usuario_creacion"`
	Cliente         ProveedorClienteJSON   `json:"client"`
	Detalles        []ProveedorDetalleJSON `json:"detalles"`
	CompanyID       int                    `json:"company_id"`
	BranchID        int                    `json:"branch_id"`
}

// ProveedorRespuestaJSON respuesta de POST {base}/boletas.
type ProveedorRespuestaJSON struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID             int64  `json:"id"`
		NumeroCompleto string `json:"numero_completo"`
	} `json:"data"`
}

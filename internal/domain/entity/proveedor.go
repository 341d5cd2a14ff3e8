package entity

// Proveedor es una entrada del registro de proveedores. Los tres campos son
// obligatorios; se permiten duplicados.
type Proveedor struct {
	Nombre    string
	Telefono  string
	Direccion string
}

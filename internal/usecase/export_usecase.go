package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"
)

const backupVersion = "1.0"

var statusLabels = map[entities.OrderStatus]string{
	entities.OrderStatusRecibido:       "Recibido",
	entities.OrderStatusDiagnosticando: "Diagnosticando",
	entities.OrderStatusReparando:      "Reparando",
	entities.OrderStatusListo:          "Listo para Entrega",
	entities.OrderStatusEntregado:      "Entregado",
}

// Backup is the full JSON dump used for off-site copies. Re-importing the
// orders array reproduces every order field bit-for-bit.
type Backup struct {
	Orders     []entities.ServiceOrder   `json:"orders"`
	Settings   entities.BusinessSettings `json:"settings"`
	Parts      []entities.Part           `json:"parts"`
	Services   []entities.RepairService  `json:"services"`
	ExportDate time.Time                 `json:"exportDate"`
	Version    string                    `json:"version"`
}

type IExportUseCase interface {
	ExportJSON(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type ExportUseCase struct {
	orderRepo    interfaces.IOrderRepository
	partRepo     interfaces.IPartRepository
	serviceRepo  interfaces.IServiceRepository
	settingsRepo interfaces.ISettingsRepository
}

var _ IExportUseCase = (*ExportUseCase)(nil)

func NewExportUseCase(
	orderRepo interfaces.IOrderRepository,
	partRepo interfaces.IPartRepository,
	serviceRepo interfaces.IServiceRepository,
	settingsRepo interfaces.ISettingsRepository,
) *ExportUseCase {
	return &ExportUseCase{
		orderRepo:    orderRepo,
		partRepo:     partRepo,
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
	}
}

func (u *ExportUseCase) ExportJSON(ctx context.Context) ([]byte, error) {
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	parts, err := u.partRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	services, err := u.serviceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	backup := Backup{
		Orders:     orders,
		Settings:   settings,
		Parts:      parts,
		Services:   services,
		ExportDate: time.Now().UTC(),
		Version:    backupVersion,
	}
	return json.MarshalIndent(backup, "", "  ")
}

// ExportCSV renders the order list as UTF-8 CSV with a BOM so spreadsheet
// apps pick up the encoding.
func (u *ExportUseCase) ExportCSV(ctx context.Context) ([]byte, error) {
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	header := []string{
		"Número de Orden", "Fecha de Creación", "Estado", "Cliente", "Teléfono",
		"Email", "Tipo de Equipo", "Marca", "Modelo", "Número de Serie",
		"Accesorios", "Problema", "Diagnóstico", "Costo Estimado",
		"Costo Repuestos", "Entrega Estimada", "Notas Internas",
		"Última Actualización",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, o := range orders {
		label, ok := statusLabels[o.Status]
		if !ok {
			label = string(o.Status)
		}
		notes := make([]string, 0, len(o.InternalNotes))
		for _, n := range o.InternalNotes {
			notes = append(notes, n.Text)
		}
		row := []string{
			o.OrderNumber,
			o.CreatedAt.Format("02/01/2006"),
			label,
			o.CustomerName,
			o.CustomerPhone,
			o.CustomerEmail,
			o.DeviceType,
			o.DeviceBrand,
			o.DeviceModel,
			o.SerialNumber,
			o.Accessories,
			o.ProblemDescription,
			o.Diagnosis,
			formatAmount(o.EstimatedCost),
			formatAmount(o.PartsCost),
			o.EstimatedDelivery,
			strings.Join(notes, " | "),
			o.UpdatedAt.Format("02/01/2006"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%g", v)
}

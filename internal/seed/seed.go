// Package seed populates an empty snapshot store with sample studio
// data so a fresh development environment has something to validate.
package seed

import (
	"context"
	"errors"

	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	crmdomain "github.com/smallbiznis/riasku/internal/crm/domain"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	projectdomain "github.com/smallbiznis/riasku/internal/project/domain"
	"github.com/smallbiznis/riasku/internal/store"
)

func ptr(v int64) *int64 { return &v }

// EnsureDemoData writes the sample collections when the clients document
// does not exist yet. An existing document, even an empty list, is left
// alone.
func EnsureDemoData(ctx context.Context, snapshots *store.Snapshots) error {
	if snapshots == nil {
		return errors.New("seed snapshot store is required")
	}

	clients, err := snapshots.LoadClients(ctx)
	if err != nil {
		return err
	}
	if len(clients) > 0 {
		return nil
	}

	if err := snapshots.SaveClients(ctx, demoClients()); err != nil {
		return err
	}
	if err := snapshots.SaveProjects(ctx, demoProjects()); err != nil {
		return err
	}
	if err := snapshots.SaveInvoices(ctx, demoInvoices()); err != nil {
		return err
	}
	if err := snapshots.SaveLeads(ctx, demoLeads()); err != nil {
		return err
	}
	return snapshots.SaveTestimonials(ctx, demoTestimonials())
}

func demoClients() []clientdomain.Client {
	return []clientdomain.Client{
		{
			ID:            1,
			Name:          "Dina & Raka",
			Phone:         "081234567890",
			TotalAmount:   7_500_000,
			PaidAmount:    3_000_000,
			PaymentStatus: clientdomain.PaymentStatusPartial,
			Events: []clientdomain.Event{
				{
					ServiceType:   clientdomain.ServiceTypeAkad,
					EventDate:     "2025-12-06",
					EventTime:     "08:00",
					Venue:         "Gedung Serbaguna Cilandak",
					PackageName:   "Paket Akad Silver",
					Amount:        3_000_000,
					PaymentStatus: clientdomain.PaymentStatusPaid,
				},
				{
					ServiceType:   clientdomain.ServiceTypeResepsi,
					EventDate:     "2025-12-06",
					EventTime:     "11:00",
					PackageName:   "Paket Resepsi Gold",
					Amount:        4_500_000,
					PaymentStatus: clientdomain.PaymentStatusUnpaid,
				},
			},
			PaymentHistory: []clientdomain.PaymentHistoryEntry{
				{
					Date:          "2025-11-01",
					Amount:        3_000_000,
					Description:   "DP akad",
					Method:        "Transfer Bank",
					InvoiceID:     ptr(1),
					InvoiceNumber: "INV-202511-001-01",
				},
			},
			CommunicationLog: []clientdomain.CommunicationLogEntry{
				{Date: "2025-10-28", Channel: "whatsapp", Note: "Konfirmasi jadwal akad"},
			},
			CreatedAt: "2025-10-25",
			UpdatedAt: "2025-11-01",
		},
		{
			ID:            2,
			Name:          "Salsabila",
			Email:         "salsa@example.com",
			TotalAmount:   1_200_000,
			PaymentStatus: clientdomain.PaymentStatusUnpaid,
			Events: []clientdomain.Event{
				{
					ServiceType: clientdomain.ServiceTypeWisuda,
					EventDate:   "2025-11-20",
					EventTime:   "06:00",
					PackageName: "Paket Wisuda",
					Amount:      1_200_000,
				},
			},
			CreatedAt: "2025-11-02",
			UpdatedAt: "2025-11-02",
		},
	}
}

func demoProjects() []projectdomain.Project {
	return []projectdomain.Project{
		{
			ID:        1,
			Title:     "Pernikahan Dina & Raka",
			Client:    "Dina & Raka",
			ClientID:  ptr(1),
			Date:      "2025-12-06",
			Budget:    7_500_000,
			Paid:      3_000_000,
			Status:    projectdomain.ProjectStatusBooked,
			CreatedAt: "2025-10-25",
			UpdatedAt: "2025-11-01",
		},
	}
}

func demoInvoices() []invoicedomain.Invoice {
	return []invoicedomain.Invoice{
		{
			ID:            1,
			InvoiceNumber: "INV-202511-001-01",
			ClientID:      1,
			Client:        "Dina & Raka",
			Amount:        3_000_000,
			Description:   "DP akad",
			Items: []invoicedomain.Item{
				{Description: "DP akad", Quantity: 1, Price: 3_000_000},
			},
			Date:          "2025-11-01",
			DueDate:       "2025-12-01",
			Status:        invoicedomain.StatusPaid,
			PaidDate:      "2025-11-01",
			PaymentMethod: "Transfer Bank",
			CreatedAt:     "2025-11-01",
			UpdatedAt:     "2025-11-01",
		},
	}
}

func demoLeads() []crmdomain.Lead {
	return []crmdomain.Lead{
		{
			ID:        1,
			Name:      "Maya",
			Contact:   "085512345678",
			Source:    "instagram",
			Status:    crmdomain.LeadStatusNew,
			Date:      "2025-11-10",
			Notes:     "Tanya paket wisuda Desember",
			CreatedAt: "2025-11-10",
		},
	}
}

func demoTestimonials() []crmdomain.Testimonial {
	return []crmdomain.Testimonial{
		{
			ID:         1,
			ClientName: "Dina & Raka",
			Slug:       "dina-raka",
			Content:    "Makeup tahan seharian, hasilnya flawless!",
			Rating:     5,
			Date:       "2025-11-05",
			Published:  true,
		},
	}
}

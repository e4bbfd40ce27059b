package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)

	clients := api.Group("/clients", handler.AuthRequired)
	clients.Get("", handler.ListClients)
	clients.Post("", handler.CreateClient)
	clients.Get("/export/csv", handler.ExportClientsCSV)
	clients.Get("/:id", handler.GetClient)
	clients.Put("/:id", handler.UpdateClient)
	clients.Delete("/:id", handler.DeleteClient)
	clients.Get("/:id/payments", handler.ListClientPayments)
	clients.Get("/:id/documents", handler.ListClientDocuments)
	clients.Post("/:id/documents", handler.AttachDocument)
	clients.Get("/:id/attendances", handler.ListClientAttendances)
	clients.Post("/:id/attendances", handler.RecordAttendance)
	clients.Get("/:id/declarations", handler.ListClientDeclarations)
	clients.Post("/:id/declarations", handler.IssueDeclaration)

	payments := api.Group("/payments", handler.AuthRequired)
	payments.Get("", handler.ListPayments)
	payments.Post("", handler.RegisterPayment)
	payments.Get("/export/csv", handler.ExportPaymentsCSV)
	payments.Get("/:id/receipt", handler.PaymentReceipt)
	payments.Delete("/:id", handler.DeletePayment)

	declarations := api.Group("/declarations", handler.AuthRequired)
	declarations.Get("", handler.ListDeclarations)

	expenses := api.Group("/expenses", handler.AuthRequired)
	expenses.Get("", handler.ListExpenses)
	expenses.Post("", handler.RegisterExpense)
	expenses.Get("/export/csv", handler.ExportExpensesCSV)
	expenses.Put("/:id", handler.UpdateExpense)
	expenses.Delete("/:id", handler.DeleteExpense)

	documents := api.Group("/documents", handler.AuthRequired)
	documents.Get("/:id", handler.DownloadDocument)
	documents.Delete("/:id", handler.DeleteDocument)

	reports := api.Group("/reports", handler.AuthRequired)
	reports.Get("/dues/:reference", handler.DuesReport)
	reports.Get("/balance/:month", handler.BalanceReport)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.ListSettings)
	settings.Put("/:key", handler.AdminOnly, handler.UpsertSetting)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminOnly)
	admin.Get("/users", handler.ListUsers)
	admin.Post("/users", handler.CreateUser)
	admin.Put("/users/:id", handler.UpdateUser)
	admin.Delete("/users/:id", handler.DeleteUser)
	admin.Get("/backup", handler.ExportBackup)
	admin.Post("/restore", handler.ImportBackup)
	admin.Post("/wipe", handler.Wipe)
}

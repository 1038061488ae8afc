package model

// All returns every persisted model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&ClientModel{},
		&ProjectModel{},
		&CategoryModel{},
		&InvoiceSequenceModel{},
		&InvoiceModel{},
		&LineItemModel{},
		&InvoicePaymentModel{},
		&InvoiceEmailHistoryModel{},
		&RecurringInvoiceModel{},
		&RecurringTaskModel{},
		&TaskModel{},
		&ProjectBudgetModel{},
		&BudgetCategoryModel{},
		&BudgetExpenseModel{},
		&TransactionModel{},
		&EmailQueueModel{},
	}
}

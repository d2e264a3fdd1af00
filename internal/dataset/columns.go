// Package dataset loads the supplier invoice risk dataset from CSV.
package dataset

// Column names of the source CSV.
const (
	ColInvoiceID        = "Invoice_ID"
	ColSupplierID       = "Supplier_ID"
	ColName             = "Name"
	ColABN              = "ABN"
	ColSupplierType     = "Supplier_Type"
	ColServiceCategory  = "Service_Category"
	ColCountry          = "Country"
	ColContactName      = "Contact_Name"
	ColContactEmail     = "Contact_Email"
	ColTermsDays        = "Terms (Days)"
	ColInvoiceAmount    = "Invoice_Amount"
	ColInvoiceDate      = "Invoice_Date"
	ColDueDate          = "Due_Date"
	ColPaymentDate      = "Payment_Date"
	ColStatus           = "Status"
	ColPaymentStatus    = "Payment_Status"
	ColPaidLateFlag     = "Paid_Late_Flag"
	ColDuplicateABN     = "Duplicate_ABN"
	ColDuplicateInvoice = "Duplicate_Invoice"
	ColHighAmount       = "High_Amount"
	ColRiskScore        = "Risk_Score"
)

// RequiredColumns must be present in the header or loading fails.
var RequiredColumns = []string{
	ColInvoiceID,
	ColSupplierID,
	ColName,
	ColSupplierType,
	ColServiceCategory,
	ColInvoiceAmount,
	ColInvoiceDate,
	ColDueDate,
	ColPaymentDate,
	ColStatus,
	ColPaymentStatus,
	ColPaidLateFlag,
	ColDuplicateABN,
	ColDuplicateInvoice,
	ColHighAmount,
}

// AllColumns lists every known column in canonical order.
var AllColumns = []string{
	ColInvoiceID,
	ColSupplierID,
	ColName,
	ColABN,
	ColSupplierType,
	ColServiceCategory,
	ColCountry,
	ColContactName,
	ColContactEmail,
	ColTermsDays,
	ColInvoiceAmount,
	ColInvoiceDate,
	ColDueDate,
	ColPaymentDate,
	ColStatus,
	ColPaymentStatus,
	ColPaidLateFlag,
	ColDuplicateABN,
	ColDuplicateInvoice,
	ColHighAmount,
	ColRiskScore,
}

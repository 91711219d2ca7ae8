package entities

// Fiscal receipt (54-FZ) payloads. The pipeline treats all of this as opaque
// structured data: it is carried on create/capture requests verbatim and
// never inspected by the client.

type ReceiptCustomer struct {
	FullName *string `json:"full_name,omitempty"`
	INN      *string `json:"inn,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

type ReceiptMarkQuantity struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

type PaymentSubjectIndustryDetails struct {
	FederalID      string `json:"federal_id"`
	DocumentDate   string `json:"document_date"`
	DocumentNumber string `json:"document_number"`
	Value          string `json:"value"`
}

type ReceiptItem struct {
	Description                   string                          `json:"description"`
	Quantity                      string                          `json:"quantity"`
	Amount                        Amount                          `json:"amount"`
	VATCode                       int                             `json:"vat_code"`
	PaymentMode                   *string                         `json:"payment_mode,omitempty"`
	PaymentSubject                *string                         `json:"payment_subject,omitempty"`
	CountryOfOriginCode           *string                         `json:"country_of_origin_code,omitempty"`
	CustomsDeclarationNumber      *string                         `json:"customs_declaration_number,omitempty"`
	Excise                        *string                         `json:"excise,omitempty"`
	ProductCode                   *string                         `json:"product_code,omitempty"`
	MarkQuantity                  *ReceiptMarkQuantity            `json:"mark_quantity,omitempty"`
	PaymentSubjectIndustryDetails []PaymentSubjectIndustryDetails `json:"payment_subject_industry_details,omitempty"`
	ProductMark                   *string                         `json:"product_mark,omitempty"`
}

type ReceiptIndustryDetails struct {
	FederalID      string `json:"federal_id"`
	DocumentDate   string `json:"document_date"`
	DocumentNumber string `json:"document_number"`
	Value          string `json:"value"`
}

type ReceiptOperationalDetails struct {
	OperationID int    `json:"operation_id"`
	Value       string `json:"value"`
	CreatedAt   string `json:"created_at"`
}

type Receipt struct {
	Customer                  *ReceiptCustomer           `json:"customer,omitempty"`
	Items                     []ReceiptItem              `json:"items"`
	TaxSystemCode             *int                       `json:"tax_system_code,omitempty"`
	ReceiptIndustryDetails    []ReceiptIndustryDetails   `json:"receipt_industry_details,omitempty"`
	ReceiptOperationalDetails *ReceiptOperationalDetails `json:"receipt_operational_details,omitempty"`
}

// Package codes resolves DBS/POSB short transaction-type codes to their
// human-readable descriptions. The table is reference data: loaded once,
// never written after init.
package codes

// Resolved descriptions that other packages key behaviour on.
const (
	PointOfSale      = "Point-of-Sale Transaction"
	DebitCard        = "Debit Card Transaction"
	FASTReceipt      = "FAST Payment / Receipt"
	FundsTransfer    = "Funds Transfer"
	InterbankGIRO    = "Interbank GIRO"
	ATMWithdrawal    = "ATM Cash Withdrawal"
	BillPayment      = "Bill Payment"
	Salary           = "Salary Credit"
	InterestEarned   = "Interest Earned"
	ChequeDeposit    = "Cheque Deposit"
	ChequeIssued     = "Cheque Issued"
	StandingOrder    = "Standing Instruction"
	ServiceCharge    = "Service Charge"
	CashDeposit      = "Cash Deposit"
	RemittanceInward = "Inward Remittance"
)

// table maps the short code printed in the statement's second column to its
// full description. Codes not listed here resolve to themselves.
var table = map[string]string{
	"POS":  PointOfSale,
	"MST":  DebitCard,
	"ICT":  FASTReceipt,
	"ITR":  FundsTransfer,
	"IBG":  InterbankGIRO,
	"AWL":  ATMWithdrawal,
	"BILL": BillPayment,
	"SAL":  Salary,
	"INT":  InterestEarned,
	"CDP":  ChequeDeposit,
	"CHQ":  ChequeIssued,
	"SI":   StandingOrder,
	"SC":   ServiceCharge,
	"CSH":  CashDeposit,
	"RTC":  RemittanceInward,
	"ADV":  "Payment / Receipt Advice",
	"AGT":  "Agent Transaction",
	"BCC":  "Credit Card Bill",
	"DCR":  "Debit Card Annual Fee Rebate",
	"DIV":  "Dividend Credit",
	"DRF":  "Demand Draft",
	"FCY":  "Foreign Currency Conversion",
	"GRO":  "GIRO Payment",
	"IDS":  "Instant Deposit",
	"IPS":  "Instalment Payment",
	"LNR":  "Loan Repayment",
	"MAS":  "MAS Electronic Payment",
	"NETS": "NETS Payment",
	"PPD":  "PayLah! Top-Up / Withdrawal",
	"RCL":  "Cheque Recall",
	"REV":  "Reversal",
	"STO":  "Standing Order",
	"TCC":  "Telegraphic Transfer Charge",
	"TTR":  "Telegraphic Transfer",
	"UPL":  "Unit Trust Placement",
}

// Resolve returns the full description for a short code. Unknown codes come
// back unchanged so one unfamiliar row never blocks a whole statement.
func Resolve(code string) string {
	if desc, ok := table[code]; ok {
		return desc
	}
	return code
}

// Known reports whether the code has a dedicated description.
func Known(code string) bool {
	_, ok := table[code]
	return ok
}

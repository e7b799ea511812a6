package parse

import "regexp"

// Receipt-metadata markers. A line matching any of these is register noise
// (totals, tender, store info), never a purchasable item.
var denylist = []*regexp.Regexp{
	// transaction totals / tax / tender
	regexp.MustCompile(`(?i)RECEIPT|SUBTOTAL|TOTAL|TAX|CHANGE|CASH|CREDIT|DEBIT|TENDER|BALANCE`),
	// payment brands
	regexp.MustCompile(`(?i)VISA|MASTERCARD|MASTER CARD|AMEX|AMERICAN EXPRESS|DISCOVER`),
	// membership / rewards programs
	regexp.MustCompile(`(?i)MEMBER|REWARDS|LOYALTY`),
	// store boilerplate
	regexp.MustCompile(`(?i)THANK YOU|STORE|CASHIER|REG#|TRANS#`),
	// address fragments
	regexp.MustCompile(`(?i)\b(STREET|AVENUE|AVE|BLVD|BOULEVARD|SUITE|STE|HWY)\b`),
	// bare dates like 04/12/2023
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	// bare times like 14:03
	regexp.MustCompile(`\b\d{1,2}:\d{2}\b`),
	// store-code lines like "ST0042"
	regexp.MustCompile(`^[A-Z]{2,}\d+$`),
	// separator runs
	regexp.MustCompile(`^[*\-=]{3,}$`),
}

// IsMetadataLine reports whether the line matches a known receipt-metadata
// marker and should be skipped by the primary parser.
func IsMetadataLine(line string) bool {
	for _, re := range denylist {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

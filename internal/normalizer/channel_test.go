package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

func TestClassifyChannel(t *testing.T) {
	tests := []struct {
		name    string
		desc    string
		section statement.Section
		want    statement.Channel
	}{
		{"checkcard", "CHECKCARD 0322 STARBUCKS STORE 00123", statement.SectionATMDebit, statement.ChannelCheckcard},
		{"purchase", "PURCHASE AUTHORIZED ON 03/22 TARGET T-1234", statement.SectionATMDebit, statement.ChannelPurchase},
		{"atm deposit", "BKOFAMERICA ATM 03/22 #000004567 DEPOSIT", statement.SectionDeposits, statement.ChannelATMDeposit},
		{"atm withdrawal", "BKOFAMERICA ATM 03/25 #000009876 WITHDRWL", statement.SectionATMDebit, statement.ChannelATMWithdrawal},
		{"financial center", "COUNTER CREDIT DEPOSIT", statement.SectionDeposits, statement.ChannelFinancialCenterDeposit},
		{"online transfer", "Online Banking transfer from CHK 3529", statement.SectionDeposits, statement.ChannelOnlineBankingTransfer},
		{"zelle", "Zelle payment from JOHN DOE Conf# abc123", statement.SectionDeposits, statement.ChannelZelle},
		{"fee keywords", "Monthly Maintenance Fee", statement.SectionNone, statement.ChannelFee},
		{"unknown", "WIRE TYPE:WIRE IN", statement.SectionNone, statement.ChannelOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ClassifyChannel(tt.desc, tt.section)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyChannel_SectionHintsWin(t *testing.T) {
	// A description that looks like a card purchase still classifies by the
	// authoritative section it was printed under.
	got, _ := ClassifyChannel("CHECKCARD 0322 SOMETHING", statement.SectionFees)
	assert.Equal(t, statement.ChannelFee, got)

	got, _ = ClassifyChannel("1024", statement.SectionChecks)
	assert.Equal(t, statement.ChannelCheck, got)
}

func TestClassifyChannel_ZelleBeatsTransfer(t *testing.T) {
	// Zelle transfers go through online banking too; the more specific rule
	// is ordered first.
	got, _ := ClassifyChannel("Online Banking Zelle payment to JANE", statement.SectionNone)
	assert.Equal(t, statement.ChannelZelle, got)
}

func TestClassifyChannel_RecurringSubtype(t *testing.T) {
	ch, subtype := ClassifyChannel("CHECKCARD 0301 RECURRING NETFLIX.COM", statement.SectionATMDebit)
	assert.Equal(t, statement.ChannelCheckcard, ch)
	assert.Equal(t, "recurring", subtype)
}

func TestExtractBankReference(t *testing.T) {
	t.Run("checkcard trace", func(t *testing.T) {
		got := ExtractBankReference(
			"CHECKCARD 0315 AMAZON MKTPLACE 24692165073100123456789",
			statement.ChannelCheckcard)
		assert.Equal(t, "24692165073100123456789", got)
	})

	t.Run("trace never extracted for other channels", func(t *testing.T) {
		desc := "PURCHASE AMAZON MKTPLACE 24692165073100123456789"
		assert.Empty(t, ExtractBankReference(desc, statement.ChannelPurchase))
		assert.Empty(t, ExtractBankReference(desc, statement.ChannelOther))
	})

	t.Run("transfer confirmation", func(t *testing.T) {
		got := ExtractBankReference(
			"Online Banking transfer from CHK 3529 Confirmation# 1234567890",
			statement.ChannelOnlineBankingTransfer)
		assert.Equal(t, "1234567890", got)
	})

	t.Run("zelle confirmation code", func(t *testing.T) {
		got := ExtractBankReference(
			"Zelle payment from JOHN DOE Conf# abc123xyz",
			statement.ChannelZelle)
		assert.Equal(t, "ABC123XYZ", got)
	})

	t.Run("atm sequence", func(t *testing.T) {
		got := ExtractBankReference(
			"BKOFAMERICA ATM 03/22 #000004567 DEPOSIT",
			statement.ChannelATMDeposit)
		assert.Equal(t, "000004567", got)
	})

	t.Run("check number", func(t *testing.T) {
		assert.Equal(t, "1024", ExtractBankReference("Check #1024", statement.ChannelCheck))
		assert.Equal(t, "1025", ExtractBankReference("1025", statement.ChannelCheck))
	})

	t.Run("no reference present", func(t *testing.T) {
		assert.Empty(t, ExtractBankReference("CHECKCARD 0315 CORNER CAFE", statement.ChannelCheckcard))
	})
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name    string
		desc    string
		channel statement.Channel
		want    string
	}{
		{
			"checkcard with trace and city",
			"CHECKCARD 0315 AMAZON MKTPLACE AMZN.COM/BILL WA 24692165073100123456789",
			statement.ChannelCheckcard,
			"Amazon Mktplace AMZN.COM/BILL",
		},
		{
			"purchase prefix stripped",
			"PURCHASE AUTHORIZED ON 03/22 CORNER CAFE PORTLAND OR",
			statement.ChannelPurchase,
			"Corner Cafe",
		},
		{
			"transfers have no merchant",
			"Online Banking transfer from CHK 3529",
			statement.ChannelOnlineBankingTransfer,
			"",
		},
		{
			"checks have no merchant",
			"Check #1024",
			statement.ChannelCheck,
			"",
		},
		{
			"too short after cleanup",
			"CHECKCARD 0315 AB 1234567",
			statement.ChannelCheckcard,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMerchant(tt.desc, tt.channel))
		})
	}
}

func TestComputeFlags(t *testing.T) {
	t.Run("no flags is nil", func(t *testing.T) {
		assert.Nil(t, ComputeFlags(statement.ChannelCheckcard, "CHECKCARD 0322 CORNER CAFE"))
	})

	t.Run("subscription keyword", func(t *testing.T) {
		f := ComputeFlags(statement.ChannelCheckcard, "CHECKCARD 0301 NETFLIX.COM")
		if assert.NotNil(t, f) {
			assert.True(t, f.IsSubscription)
		}
	})

	t.Run("recurring keyword", func(t *testing.T) {
		f := ComputeFlags(statement.ChannelCheckcard, "CHECKCARD 0301 RECURRING GYM DUES")
		if assert.NotNil(t, f) {
			assert.True(t, f.IsRecurring)
			assert.True(t, f.IsSubscription, "recurring is also in the subscription keyword list")
		}
	})

	t.Run("cash movement", func(t *testing.T) {
		f := ComputeFlags(statement.ChannelATMWithdrawal, "BKOFAMERICA ATM WITHDRWL")
		if assert.NotNil(t, f) {
			assert.True(t, f.IsCashWithdrawal)
		}

		f = ComputeFlags(statement.ChannelATMDeposit, "BKOFAMERICA ATM DEPOSIT")
		if assert.NotNil(t, f) {
			assert.True(t, f.IsCashDeposit)
		}
	})

	t.Run("transfer", func(t *testing.T) {
		f := ComputeFlags(statement.ChannelZelle, "Zelle payment to JANE")
		if assert.NotNil(t, f) {
			assert.True(t, f.IsTransfer)
		}
	})
}

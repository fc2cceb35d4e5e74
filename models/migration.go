package models

import (
	"log"

	"github.com/proofpay/proofpay_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Receipt{}, &ReceiptItem{},
		&Dispute{}, &DisputeItem{}, &DisputeAttachment{},
		&ReceiptEvent{},
		&BankSetting{},
		&ReceiptShare{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}

package bank

import "fmt"

const (
	successPrefix = "[ SUCCESS ] "
	failPrefix    = "[ FAIL ] "
)

func depositMsg(prefix string, workerID, ledgerID, accountID int, amount uint64) string {
	return fmt.Sprintf("%sTID: %d, LID: %d, Acc: %d DEPOSIT $%d", prefix, workerID, ledgerID, accountID, amount)
}

func withdrawMsg(prefix string, workerID, ledgerID, accountID int, amount uint64) string {
	return fmt.Sprintf("%sTID: %d, LID: %d, Acc: %d WITHDRAW $%d", prefix, workerID, ledgerID, accountID, amount)
}

func transferMsg(prefix string, workerID, ledgerID, srcID, destID int, amount uint64) string {
	return fmt.Sprintf("%sTID: %d, LID: %d, Acc: %d TRANSFER $%d TO Acc: %d", prefix, workerID, ledgerID, srcID, amount, destID)
}

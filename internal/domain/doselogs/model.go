package doselogs

import "time"

// DoseLog registra que una toma (medicina + hora) se tomó en un día calendario.
// Es inmutable: solo se agregan.
type DoseLog struct {
	ID       string
	AdminID  string
	ParentID string

	MedicineID string
	DoseTime   string // "HH:MM"
	Date       string // "yyyy-MM-dd", día local del parent

	TakenAt time.Time
}

// IsTaken: existe un log con exactamente (medicineID, doseTime, dateKey).
func IsTaken(logs []DoseLog, medicineID, doseTime, dateKey string) bool {
	for _, l := range logs {
		if l.MedicineID == medicineID && l.DoseTime == doseTime && l.Date == dateKey {
			return true
		}
	}
	return false
}

// TakenOn devuelve un predicado (medicineID, doseTime) fijado al día dateKey.
func TakenOn(logs []DoseLog, dateKey string) func(medicineID, doseTime string) bool {
	return func(medicineID, doseTime string) bool {
		return IsTaken(logs, medicineID, doseTime, dateKey)
	}
}

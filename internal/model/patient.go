package model

// AppointmentDetail is the appointment half of the doctor detail payload.
type AppointmentDetail struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	PatientID   string `json:"patient_id"`
	RoomID      string `json:"room_id"`
}

// PatientDetail is the patient half of the doctor detail payload.
type PatientDetail struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	DOB       string  `json:"dob"`
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	Age       int     `json:"age"`
	Address   string  `json:"address"`
}

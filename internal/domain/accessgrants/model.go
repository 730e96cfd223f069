package accessgrants

import "time"

// Grant autoriza a un médico a leer todos los reportes de un paciente.
// Existe a lo sumo uno por (PatientID, DoctorID); revocar lo borra.
type Grant struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	GrantedAt time.Time
}

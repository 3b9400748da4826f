package directory

import "fmt"

// Reference cache keys. Only specialties and doctor lists are cached.
const keySpecialties = "ref:specialties"

func keyDoctors(specialtyID uint) string {
	return fmt.Sprintf("ref:doctors:%d", specialtyID)
}

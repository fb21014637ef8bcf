// Package seed populates the user directory with demo data.
package seed

import (
	"github.com/brianvoe/gofakeit/v6"

	"github.com/adnanprojects/userdir/pkg/directory"
)

// Fixture loads the canonical demo users, ids 1 through 4. Credentials
// are plain demo values; this service stores passwords verbatim.
func Fixture(store *directory.Store) {
	fixtures := []map[string]interface{}{
		{"name": "adnan", "age": 26, "username": "adnan", "password": "adnan123"},
		{"name": "kashan", "age": 25, "username": "kashan", "password": "kashan123"},
		{"name": "arisha", "age": 23, "username": "arisha", "password": "arisha123"},
		{"name": "zaid", "age": 19, "username": "zaid", "password": "zaid123"},
	}
	for _, attrs := range fixtures {
		store.Create(attrs)
	}
}

// Fake adds n generated users on top of whatever the store holds.
func Fake(store *directory.Store, n int) {
	for i := 0; i < n; i++ {
		store.Create(map[string]interface{}{
			"name":     gofakeit.FirstName(),
			"age":      gofakeit.Number(18, 80),
			"username": gofakeit.Username(),
			"password": gofakeit.Password(true, true, true, false, false, 12),
			"email":    gofakeit.Email(),
			"city":     gofakeit.City(),
		})
	}
}

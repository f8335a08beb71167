package migrations

import "testing"

// Registration derives the migration name from the registering file, so
// the file must carry a digit prefix or MustRegister panics at init.
func TestBootstrapMigrationRegistered(t *testing.T) {
	sorted := Migrations.Sorted()
	if len(sorted) != 1 {
		t.Fatalf("expected exactly one registered migration, got %d", len(sorted))
	}
	if sorted[0].Name != "0001" {
		t.Fatalf("unexpected migration name %q", sorted[0].Name)
	}
}

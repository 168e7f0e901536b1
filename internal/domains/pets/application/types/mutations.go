package types

// AddPetInput carries the intake fields for a new listing.
// PhotoURL and Notes are empty when not supplied; Age is nil when not supplied.
type AddPetInput struct {
	Name     string
	Species  string
	PhotoURL string
	Age      *int
	Notes    string
}

// EditPetInput carries the listing fields staff may change on an existing pet.
type EditPetInput struct {
	ID        int64
	PhotoURL  string
	Notes     string
	Available bool
}

// PetIdentifier addresses a single pet.
type PetIdentifier struct {
	ID int64
}

package config

// DefaultDatabasePath is the default location of the catalog database.
const DefaultDatabasePath = "./books.db"

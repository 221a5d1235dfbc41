package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// lockForUpdate adds SELECT ... FOR UPDATE on Postgres. sqlite (the test
// database) has no row locks and would reject the clause; its writes are
// serialized by the engine anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// nowExpr prefers database time over application time for touch updates.
func nowExpr(db *gorm.DB) clause.Expr {
	if db.Dialector.Name() == "postgres" {
		return gorm.Expr("NOW()")
	}
	return gorm.Expr("CURRENT_TIMESTAMP")
}

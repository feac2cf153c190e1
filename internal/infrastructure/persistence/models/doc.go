// Package models holds the GORM persistence models and their mappers to and
// from domain entities. Domain packages stay free of ORM tags; relations are
// plain foreign-key columns and every cross-table read is an explicit join.
package models

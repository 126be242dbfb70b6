package storage

import (
	"time"

	"github.com/padelmixer/padelmixer-admin/internal/model"
)

func registered(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func birth(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// SeedPlayers returns the sample directory used by the fake backings
func SeedPlayers() []model.Player {
	return []model.Player{
		{ID: 1, FirstName: "Carlos", LastName: "García López", Email: "carlos.garcia@email.com", Phone: "+34 600 111 222",
			BirthDate: birth("1985-03-15"), SkillLevel: model.SkillAdvanced, RegisteredAt: registered("2024-01-10T10:00:00"),
			Notes: "Juega principalmente los fines de semana", Active: true},
		{ID: 2, FirstName: "María", LastName: "Rodríguez Sánchez", Email: "maria.rodriguez@email.com", Phone: "+34 611 222 333",
			BirthDate: birth("1990-07-22"), SkillLevel: model.SkillIntermediate, RegisteredAt: registered("2024-01-15T11:30:00"),
			Notes: "Interesada en torneos", Active: true},
		{ID: 3, FirstName: "Juan", LastName: "Martínez Fernández", Email: "juan.martinez@email.com", Phone: "+34 622 333 444",
			BirthDate: birth("1988-11-05"), SkillLevel: model.SkillProfessional, RegisteredAt: registered("2024-01-20T09:15:00"),
			Notes: "Ex jugador profesional", Active: true},
		{ID: 4, FirstName: "Ana", LastName: "López Martín", Email: "ana.lopez@email.com", Phone: "+34 633 444 555",
			BirthDate: birth("1995-02-14"), SkillLevel: model.SkillBeginner, RegisteredAt: registered("2024-02-01T14:00:00"),
			Notes: "Primera experiencia en pádel", Active: true},
		{ID: 5, FirstName: "Pedro", LastName: "González Ruiz", Email: "pedro.gonzalez@email.com", Phone: "+34 644 555 666",
			BirthDate: birth("1982-09-30"), SkillLevel: model.SkillAdvanced, RegisteredAt: registered("2024-02-05T16:30:00"),
			Notes: "Juega todos los días", Active: true},
		{ID: 6, FirstName: "Laura", LastName: "Hernández Torres", Email: "laura.hernandez@email.com", Phone: "+34 655 666 777",
			BirthDate: birth("1992-12-18"), SkillLevel: model.SkillIntermediate, RegisteredAt: registered("2024-02-10T10:45:00"),
			Active: true},
		{ID: 7, FirstName: "David", LastName: "Jiménez Castro", Email: "david.jimenez@email.com", Phone: "+34 666 777 888",
			BirthDate: birth("1987-06-25"), SkillLevel: model.SkillProfessional, RegisteredAt: registered("2024-02-15T12:00:00"),
			Notes: "Entrena a otros jugadores", Active: true},
		{ID: 8, FirstName: "Carmen", LastName: "Moreno Díaz", Email: "carmen.moreno@email.com", Phone: "+34 677 888 999",
			BirthDate: birth("1994-04-08"), SkillLevel: model.SkillBeginner, RegisteredAt: registered("2024-02-20T15:20:00"),
			Notes: "Busca pareja de juego", Active: true},
		{ID: 9, FirstName: "Javier", LastName: "Álvarez Romero", Email: "javier.alvarez@email.com", Phone: "+34 688 999 000",
			BirthDate: birth("1991-08-12"), SkillLevel: model.SkillIntermediate, RegisteredAt: registered("2024-03-01T09:00:00"),
			Notes: "Disponible tardes", Active: true},
		{ID: 10, FirstName: "Isabel", LastName: "Navarro Gil", Email: "isabel.navarro@email.com", Phone: "+34 699 000 111",
			BirthDate: birth("1989-01-27"), SkillLevel: model.SkillAdvanced, RegisteredAt: registered("2024-03-05T11:15:00"),
			Notes: "Participa en competiciones", Active: true},
		{ID: 11, FirstName: "Miguel", LastName: "Serrano Vega", Email: "miguel.serrano@email.com", Phone: "+34 600 222 333",
			BirthDate: birth("1986-10-19"), SkillLevel: model.SkillIntermediate, RegisteredAt: registered("2024-03-10T13:30:00"),
			Active: false},
		{ID: 12, FirstName: "Rosa", LastName: "Blanco Suárez", Email: "rosa.blanco@email.com", Phone: "+34 611 333 444",
			BirthDate: birth("1993-05-03"), SkillLevel: model.SkillBeginner, RegisteredAt: registered("2024-03-15T10:00:00"),
			Notes: "Clases los martes", Active: true},
		{ID: 13, FirstName: "Francisco", LastName: "Ramos Ortega", Email: "francisco.ramos@email.com", Phone: "+34 622 444 555",
			BirthDate: birth("1984-07-16"), SkillLevel: model.SkillProfessional, RegisteredAt: registered("2024-03-20T14:45:00"),
			Notes: "Monitor certificado", Active: true},
		{ID: 14, FirstName: "Elena", LastName: "Iglesias Vargas", Email: "elena.iglesias@email.com", Phone: "+34 633 555 666",
			BirthDate: birth("1996-11-29"), SkillLevel: model.SkillIntermediate, RegisteredAt: registered("2024-04-01T09:30:00"),
			Notes: "Juega en pareja fija", Active: true},
		{ID: 15, FirstName: "Antonio", LastName: "Castro Medina", Email: "antonio.castro@email.com", Phone: "+34 644 666 777",
			BirthDate: birth("1983-02-11"), SkillLevel: model.SkillAdvanced, RegisteredAt: registered("2024-04-05T16:00:00"),
			Notes: "Organizador de eventos", Active: true},
	}
}

// SeedDependencies returns the dependent counts paired with SeedPlayers.
// Players not listed have no dependents and can be deleted.
func SeedDependencies() map[model.PlayerID]model.Dependencies {
	return map[model.PlayerID]model.Dependencies{
		1:  {Matches: 4},
		5:  {Tournaments: 2},
		10: {Reservations: 1},
	}
}

package services

import (
	"testing"

	"github.com/ekosolar/solar-quote/internal/models"
	"github.com/ekosolar/solar-quote/internal/result"
)

func TestCustomerLifecycle(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewCustomerService(gdb)

	if res := svc.Create(CustomerInput{Name: ""}); res.Kind != result.KindInvalid {
		t.Fatalf("expected validation error, got %+v", res)
	}

	created := svc.Create(CustomerInput{Name: "Güneş Enerji AŞ", City: "İzmir", TaxNumber: "1234567890"})
	if !created.OK() {
		t.Fatalf("create: %+v", created)
	}
	c := created.Data.(models.Customer)

	up := svc.Update(CustomerInput{ID: c.ID, Name: "Güneş Enerji AŞ", City: "Ankara"})
	if !up.OK() || up.Data.(models.Customer).City != "Ankara" {
		t.Fatalf("update: %+v", up)
	}

	if res := svc.Delete(c.ID); !res.OK() {
		t.Fatalf("delete: %+v", res)
	}
	if res := svc.Get(c.ID); res.Kind != result.KindNotFound {
		t.Fatalf("deleted customer still visible: %+v", res)
	}
}

func TestCustomerListFilter(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewCustomerService(gdb)
	svc.Create(CustomerInput{Name: "Güneş Enerji AŞ", ContactName: "Ali Demir"})
	svc.Create(CustomerInput{Name: "Mavi İnşaat Ltd", ContactName: "Ayşe Kaya"})

	res := svc.List("demir")
	if !res.OK() {
		t.Fatalf("list: %+v", res)
	}
	items := res.Data.([]models.Customer)
	if len(items) != 1 || items[0].Name != "Güneş Enerji AŞ" {
		t.Fatalf("filter wrong: %+v", items)
	}
}

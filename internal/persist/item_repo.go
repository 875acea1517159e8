package persist

import (
	"context"

	"github.com/novaspire/worldcore/internal/component"
)

// ItemRow represents a persisted inventory item.
type ItemRow struct {
	ID         int32
	CharID     int32
	ItemID     int32
	Count      int32
	Equipped   bool
	Identified bool
	EquipSlot  int16
	ObjID      int32 // persisted ObjectID for shortcut bar stability
}

type ItemRepo struct {
	db *DB
}

func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// LoadByCharID returns all items belonging to a character.
func (r *ItemRepo) LoadByCharID(ctx context.Context, charID int32) ([]ItemRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, char_id, item_id, count, equipped, identified, equip_slot, obj_id
		 FROM character_items WHERE char_id = $1`, charID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ItemRow
	for rows.Next() {
		var it ItemRow
		if err := rows.Scan(
			&it.ID, &it.CharID, &it.ItemID, &it.Count,
			&it.Equipped, &it.Identified, &it.EquipSlot,
			&it.ObjID,
		); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, rows.Err()
}

// MaxObjID returns the maximum obj_id across all character items.
// Used on startup to initialize the ObjectID counter above all persisted values.
func (r *ItemRepo) MaxObjID(ctx context.Context) (int32, error) {
	var maxID int32
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(obj_id), 0) FROM character_items`,
	).Scan(&maxID)
	return maxID, err
}

// SaveInventory replaces all items for a character (delete + bulk insert),
// walking every typed page of component.Inventory and cross-referencing
// component.Equipment to recover which slot (if any) each item occupies.
func (r *ItemRepo) SaveInventory(ctx context.Context, charID int32, inv *component.Inventory, equip *component.Equipment) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM character_items WHERE char_id = $1`, charID); err != nil {
		return err
	}

	for page := range inv.Pages {
		for _, slot := range inv.Pages[page] {
			item := slot.Item
			if item == nil {
				continue
			}
			equipSlot := int16(-1)
			for idx := component.EquipIndex(0); idx < component.EquipAmmoThrow+1; idx++ {
				if equip.Get(idx) == item {
					equipSlot = int16(idx)
					break
				}
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO character_items (char_id, item_id, count, equipped, identified, equip_slot, obj_id)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				charID, item.ItemType, item.Quantity,
				equipSlot >= 0, item.Appraised, equipSlot, item.ItemNumber,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

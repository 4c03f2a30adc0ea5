package extraction

// summaryPrompt asks a model for the summary layout that ParsePayload reads.
const summaryPrompt = `You read Brazilian retail receipts (cupom fiscal, NFC-e, SAT).

Return ONLY a JSON object, no markdown and no explanation, with this structure:

{
  "store": "store name as printed",
  "purchase_date": "YYYY-MM-DD or null",
  "total_amount": 0.0,
  "currency": "BRL",
  "items": [
    {"description": "product name", "quantity": 1, "unit_price": 0.0, "total": 0.0}
  ]
}

Rules:
1. Amounts are JSON numbers with a dot as decimal separator ("1.234,56" becomes 1234.56).
2. total_amount is the amount payable ("TOTAL A PAGAR", "VALOR A PAGAR", "TOTAL R$"), not the amount paid or the change.
3. Fold discounts ("DESCONTO") into the item they follow; never list them as items.
4. Do not list payment, change, tax or footer lines as items.
5. Use null for values that are not printed.`
